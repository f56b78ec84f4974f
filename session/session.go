// Package session models the single managed file server: the form fields the
// operator filled in, the child process currently attached to them, and the
// UI state derived from both.
package session

// State is the lifecycle state of a Session.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
)

// Process identifies the child process attached to a Session.
type Process struct {
	// LaunchID is a unique id assigned when the process was spawned.
	LaunchID string
	PID      int
	// CommandLine is the argument string the process was started with.
	CommandLine string
}

// Session is an immutable snapshot. The With* methods return modified copies
// and never touch the receiver.
type Session struct {
	servePath string
	port      string
	serveURL  string
	process   *Process
}

// ServePath returns the folder chosen for serving.
func (s Session) ServePath() string { return s.servePath }

// Port returns the raw port text as typed by the operator.
func (s Session) Port() string { return s.port }

// ServeURL returns the display URL derived from the port, or "" when it
// could not be derived.
func (s Session) ServeURL() string { return s.serveURL }

// Process returns the attached child process, if any.
func (s Session) Process() (Process, bool) {
	if s.process == nil {
		return Process{}, false
	}
	return *s.process, true
}

// State reports Running while a process is attached.
func (s Session) State() State {
	if s.process != nil {
		return Running
	}
	return Idle
}

// WithServePath sets the folder to serve.
func (s Session) WithServePath(path string) Session {
	s.servePath = path
	return s
}

// WithPort sets the port text together with the URL derived from it.
func (s Session) WithPort(port, serveURL string) Session {
	s.port = port
	s.serveURL = serveURL
	return s
}

// WithProcess attaches a spawned child process.
func (s Session) WithProcess(p Process) Session {
	s.process = &p
	return s
}

// WithoutProcess detaches the child process, returning the Session to Idle.
func (s Session) WithoutProcess() Session {
	s.process = nil
	return s
}
