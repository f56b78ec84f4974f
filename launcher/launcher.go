// Package launcher starts the external file server as a child process and
// tracks it until it exits or is killed.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sonnes/fsrunner/server"
)

// ErrNotFound is returned by Locate when the executable does not exist.
var ErrNotFound = errors.New("executable not found")

// Locate resolves exe against the working directory and checks that a
// regular file exists there.
func Locate(exe string) (string, error) {
	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", exe, err)
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotFound)
	}
	return abs, nil
}

// Launcher spawns file server processes.
type Launcher struct {
	logger *log.Logger
}

// New creates a Launcher. A nil logger uses the default logger.
func New(logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Launcher{logger: logger.WithPrefix("launcher")}
}

// Spawn starts s and returns immediately. The child's output is discarded
// and its exit code is never inspected by callers; Done reports the exit.
func (l *Launcher) Spawn(s server.Server) (*Process, error) {
	cmd := exec.Command(s.Executable, s.Args()...)
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", s.Executable, err)
	}

	p := &Process{
		cmd:    cmd,
		done:   make(chan struct{}),
		logger: l.logger.With("pid", cmd.Process.Pid),
	}
	go p.wait()

	p.logger.Info("started file server", "exe", s.Executable, "args", s.CommandLine())
	return p, nil
}

// Process is a running (or exited) file server.
type Process struct {
	cmd     *exec.Cmd
	done    chan struct{}
	exitErr error
	logger  *log.Logger
}

func (p *Process) wait() {
	p.exitErr = p.cmd.Wait()
	close(p.done)
	p.logger.Info("file server exited", "error", p.exitErr)
}

// PID returns the operating system process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Done is closed once the process has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Alive reports whether the process has not yet exited.
func (p *Process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// ExitErr returns the error from waiting on the process. It is only
// meaningful after Done is closed.
func (p *Process) ExitErr() error {
	select {
	case <-p.done:
		return p.exitErr
	default:
		return nil
	}
}

// Kill terminates the process immediately. Killing a process that already
// exited is not an error.
func (p *Process) Kill() error {
	if !p.Alive() {
		return nil
	}
	p.logger.Info("killing file server")
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill pid %d: %w", p.PID(), err)
	}
	return nil
}
