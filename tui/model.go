// Package tui is the interactive form for choosing a folder and port and
// starting or stopping the file server.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/fsrunner/controller"
	"github.com/sonnes/fsrunner/session"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

type mode int

const (
	modeForm mode = iota
	modePicker
)

// WatchFunc reports the presence of the file server executable until ctx is
// done.
type WatchFunc func(ctx context.Context, exe string) (<-chan bool, error)

// Options configures a Model.
type Options struct {
	Controller *controller.Controller
	// StartDir is where the folder picker opens.
	StartDir string
	// Watch keeps the executable indicator current. Optional.
	Watch WatchFunc
	// Context bounds background watchers. Defaults to context.Background.
	Context context.Context
	Logger  *log.Logger
}

// Model is the Bubble Tea model for the form.
type Model struct {
	ctrl   *controller.Controller
	watch  WatchFunc
	ctx    context.Context
	logger *log.Logger

	port   textinput.Model
	picker filepicker.Model
	help   help.Model
	keys   keyMap

	mode   mode
	width  int
	height int

	// exePresent is nil until the watcher reports.
	exePresent *bool
}

// New creates the form. The port input starts with the controller's port.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "8080"
	ti.CharLimit = 5
	ti.Width = 10
	ti.Prompt = ""
	ti.SetValue(opts.Controller.Snapshot().Port())
	ti.Focus()

	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	if opts.StartDir != "" {
		fp.CurrentDirectory = opts.StartDir
	}

	return Model{
		ctrl:   opts.Controller,
		watch:  opts.Watch,
		ctx:    opts.Context,
		logger: opts.Logger.WithPrefix("tui"),
		port:   ti,
		picker: fp,
		help:   help.New(),
		keys:   newKeyMap(),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Init starts the cursor blink and the executable watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watch != nil {
		cmds = append(cmds, startWatch(m.ctx, m.watch, m.ctrl.Executable()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case exeWatchMsg:
		if msg.err != nil {
			m.logger.Warn("executable watch unavailable", "exe", m.ctrl.Executable(), "error", msg.err)
			return m, nil
		}
		return m, recvPresence(msg.ch)

	case exePresenceMsg:
		present := msg.present
		m.exePresent = &present
		return m, recvPresence(msg.ch)

	case serverExitedMsg:
		m.ctrl.Exited(msg.launchID)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.mode == modePicker {
			return m.updatePicker(msg)
		}
		return m.updateForm(msg)
	}

	// Directory listings and cursor blinks are routed to both widgets.
	var pickCmd, portCmd tea.Cmd
	m.picker, pickCmd = m.picker.Update(msg)
	m.port, portCmd = m.port.Update(msg)
	return m, tea.Batch(pickCmd, portCmd)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pick):
		m.mode = modePicker
		m.picker.Path = ""
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Start):
		if r := m.ctrl.Start(); r.Failed() {
			return m, nil
		}
		return m, waitExit(m.ctrl.Done())

	case key.Matches(msg, m.keys.Stop):
		if !m.ctrl.View().CanStop {
			return m, nil
		}
		m.ctrl.Stop()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit
	}

	before := m.port.Value()
	var cmd tea.Cmd
	m.port, cmd = m.port.Update(msg)
	if v := m.port.Value(); v != before {
		m.ctrl.SetPort(v)
	}
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeForm
		m.ctrl.SetServePath("")
		return m, nil

	case key.Matches(msg, m.keys.UseDir):
		return m.choose(m.picker.CurrentDirectory), nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if m.picker.Path != "" {
		return m.choose(m.picker.Path), cmd
	}
	return m, cmd
}

func (m Model) choose(dir string) Model {
	m.mode = modeForm
	m.picker.Path = ""
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	m.ctrl.SetServePath(dir)
	return m
}

// View renders the model
func (m Model) View() string {
	if m.mode == modePicker {
		return lipgloss.JoinVertical(lipgloss.Left,
			styleTitle.Render("Choose Folder To Serve"),
			styleEmpty.Render(m.picker.CurrentDirectory),
			m.picker.View(),
			m.help.View(pickerKeys{m.keys}),
		)
	}

	v := m.ctrl.View()
	valueWidth := max(m.width-10, 10)

	var b strings.Builder
	b.WriteString(styleTitle.Render("File Server Runner"))
	b.WriteString("\n")
	b.WriteString(row("Folder", orEmpty(ansi.Truncate(v.Path, valueWidth, "…"), "none chosen")))
	b.WriteString(row("Port", m.port.View()))
	b.WriteString(row("URL", urlText(v.URL)))
	b.WriteString(row("Server", m.serverText(v)))
	b.WriteString(row("Binary", m.exeText()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		button("Start", v.CanStart),
		" ",
		button("Stop", v.CanStop),
	))
	b.WriteString("\n")
	if v.Status.Detail != "" {
		b.WriteString(statusStyle(v.Status.Kind).Render(v.Status.Detail))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(formKeys{m.keys}))
	return b.String()
}

func (m Model) serverText(v session.View) string {
	if v.State != session.Running {
		return styleStopped.Render("○ stopped")
	}
	label := "● running"
	if p, ok := m.ctrl.Snapshot().Process(); ok {
		label = fmt.Sprintf("● running (pid %d)", p.PID)
	}
	return styleRunning.Render(label)
}

func (m Model) exeText() string {
	name := filepath.Base(m.ctrl.Executable())
	switch {
	case m.exePresent == nil:
		return styleValue.Render(name)
	case *m.exePresent:
		return styleValue.Render(name) + " " + styleStatusOK.Render("found")
	default:
		return styleValue.Render(name) + " " + styleStatusError.Render("missing")
	}
}

func row(label, value string) string {
	return styleLabel.Render(label) + value + "\n"
}

func orEmpty(s, placeholder string) string {
	if s == "" {
		return styleEmpty.Render(placeholder)
	}
	return styleValue.Render(s)
}

func urlText(url string) string {
	if url == "" {
		return styleEmpty.Render("-")
	}
	return styleURL.Render(url)
}

func button(label string, enabled bool) string {
	if enabled {
		return styleButton.Render(label)
	}
	return styleButtonDisabled.Render(label)
}
