// Package server describes how the external file-serving executable is
// invoked. The server itself is a separate program; this package only knows
// its location and its command line.
package server

import "strings"

// DefaultExecutable is the file server binary looked up relative to the
// working directory.
const DefaultExecutable = "FileServer.exe"

// Server is one invocation of the file server.
type Server struct {
	// Executable is the path of the file server binary.
	Executable string
	// Path is the folder to serve.
	Path string
	// Port is passed through as typed; the file server validates it.
	Port string
}

// Args returns the argv passed to the executable. Each value is a separate
// element, so folders containing spaces reach the server intact.
func (s Server) Args() []string {
	return []string{"--path", s.Path, "--port", s.Port}
}

// CommandLine joins Args with single spaces, without quoting.
func (s Server) CommandLine() string {
	return strings.Join(s.Args(), " ")
}
