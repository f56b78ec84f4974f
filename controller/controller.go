// Package controller implements the server session controller: it owns the
// single child-process slot and turns operator input into Session snapshots.
package controller

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sonnes/fsrunner/launcher"
	"github.com/sonnes/fsrunner/netaddr"
	"github.com/sonnes/fsrunner/server"
	"github.com/sonnes/fsrunner/session"
)

// Status messages shown to the operator.
const (
	msgFieldsEmpty    = "folder path or port number is empty"
	msgAlreadyRunning = "server already running"
	msgNoFolder       = "no folder selected"
)

// Handle is a spawned file server.
type Handle interface {
	PID() int
	Alive() bool
	Kill() error
	Done() <-chan struct{}
}

// Spawner starts file servers.
type Spawner interface {
	Spawn(s server.Server) (Handle, error)
}

// SpawnFunc adapts a function to Spawner.
type SpawnFunc func(s server.Server) (Handle, error)

func (f SpawnFunc) Spawn(s server.Server) (Handle, error) { return f(s) }

// FromLauncher adapts a launcher.Launcher to Spawner.
func FromLauncher(l *launcher.Launcher) Spawner {
	return SpawnFunc(func(s server.Server) (Handle, error) {
		p, err := l.Spawn(s)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

// Options configures a Controller.
type Options struct {
	// Executable is the file server binary, relative to the working directory
	// unless absolute. Defaults to server.DefaultExecutable.
	Executable string
	// Spawner starts the executable. Defaults to a launcher.Launcher.
	Spawner Spawner
	// LocalIPv4 resolves the address shown in the serve URL. Defaults to
	// netaddr.LocalIPv4.
	LocalIPv4 func() (string, error)
	Logger    *log.Logger
}

// Controller holds at most one child process at a time.
type Controller struct {
	exe       string
	spawner   Spawner
	localIPv4 func() (string, error)
	logger    *log.Logger

	mu      sync.Mutex
	session session.Session
	handle  Handle
	last    session.Result
}

// New creates a Controller with an empty Session.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Executable == "" {
		opts.Executable = server.DefaultExecutable
	}
	if opts.Spawner == nil {
		opts.Spawner = FromLauncher(launcher.New(opts.Logger))
	}
	if opts.LocalIPv4 == nil {
		opts.LocalIPv4 = netaddr.LocalIPv4
	}
	return &Controller{
		exe:       opts.Executable,
		spawner:   opts.Spawner,
		localIPv4: opts.LocalIPv4,
		logger:    opts.Logger.WithPrefix("controller"),
	}
}

// Executable returns the configured file server path.
func (c *Controller) Executable() string {
	return c.exe
}

// Snapshot returns the current Session.
func (c *Controller) Snapshot() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// View derives the UI state from the current Session and the last result.
func (c *Controller) View() session.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.Derive(c.session, c.last)
}

// SetServePath records the folder chosen in the picker. An empty path means
// the picker was closed without a choice and leaves the previous folder.
func (c *Controller) SetServePath(path string) session.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == "" {
		return c.report(session.Fail(session.KindPicker, msgNoFolder))
	}
	c.session = c.session.WithServePath(path)
	c.logger.Debug("serve path set", "path", path)
	return c.report(session.OK("serving folder " + path))
}

// SetPort records the port text and recomputes the serve URL. A running
// server is not affected.
func (c *Controller) SetPort(port string) session.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	ip, err := c.localIPv4()
	if err != nil {
		c.session = c.session.WithPort(port, "")
		c.logger.Warn("local address unavailable", "error", err)
		return c.report(session.Fail(session.KindEnvironment, "%s", err))
	}

	url := netaddr.ServeURL(ip, port)
	c.session = c.session.WithPort(port, url)
	return c.report(session.OK(url))
}

// Start spawns the file server for the current folder and port. Refusals are
// returned as results and leave the Session unchanged.
func (c *Controller) Start() session.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s.ServePath() == "" || s.Port() == "" {
		return c.report(session.Fail(session.KindPrecondition, msgFieldsEmpty))
	}
	if c.handle != nil {
		return c.report(session.Fail(session.KindPrecondition, msgAlreadyRunning))
	}

	exe, err := launcher.Locate(c.exe)
	if err != nil {
		c.logger.Debug("executable missing", "error", err)
		return c.report(session.Fail(session.KindPrecondition, "%s not found!", filepath.Base(c.exe)))
	}

	srv := server.Server{Executable: exe, Path: s.ServePath(), Port: s.Port()}
	h, err := c.spawner.Spawn(srv)
	if err != nil {
		c.logger.Error("spawn failed", "error", err)
		return c.report(session.Fail(session.KindProcess, "%s", err))
	}

	p := session.Process{
		LaunchID:    uuid.NewString(),
		PID:         h.PID(),
		CommandLine: srv.CommandLine(),
	}
	c.handle = h
	c.session = s.WithProcess(p)
	c.logger.Info("server started", "launch", p.LaunchID, "pid", p.PID, "args", p.CommandLine)
	return c.report(session.OK("server started"))
}

// Stop kills the attached server if it is still alive. With no server
// attached, or one that already exited, it only resets the Session to Idle.
// The Session goes Idle even when the kill fails.
func (c *Controller) Stop() session.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.handle
	p, _ := c.session.Process()
	c.handle = nil
	c.session = c.session.WithoutProcess()

	if h == nil || !h.Alive() {
		return c.report(session.OK("server stopped"))
	}
	if err := h.Kill(); err != nil {
		c.logger.Error("kill failed, server orphaned", "launch", p.LaunchID, "pid", h.PID(), "error", err)
		return c.report(session.Fail(session.KindProcess, "%s", err))
	}
	c.logger.Info("server stopped", "launch", p.LaunchID, "pid", h.PID())
	return c.report(session.OK("server stopped"))
}

// Exited tells the controller that the launch with the given id ended on
// its own. It is ignored unless that launch is the one attached.
func (c *Controller) Exited(launchID string) session.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.session.Process()
	if c.handle == nil || !ok || p.LaunchID != launchID {
		return c.last
	}
	c.handle = nil
	c.session = c.session.WithoutProcess()
	c.logger.Warn("server exited", "launch", launchID, "pid", p.PID)
	return c.report(session.Fail(session.KindProcess, "server exited"))
}

// Done returns the exit channel and launch id of the attached server, or a
// nil channel when none is attached.
func (c *Controller) Done() (<-chan struct{}, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.session.Process()
	if c.handle == nil || !ok {
		return nil, ""
	}
	return c.handle.Done(), p.LaunchID
}

func (c *Controller) report(r session.Result) session.Result {
	c.last = r
	return r
}
