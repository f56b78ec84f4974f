package tui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sonnes/fsrunner/controller"
	"github.com/sonnes/fsrunner/server"
	"github.com/sonnes/fsrunner/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	pid  int
	done chan struct{}
}

func (h *fakeHandle) PID() int              { return h.pid }
func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *fakeHandle) Kill() error {
	if h.Alive() {
		close(h.done)
	}
	return nil
}

type fixture struct {
	ctrl    *controller.Controller
	handles []*fakeHandle
	spawned []server.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	exe := filepath.Join(t.TempDir(), server.DefaultExecutable)
	require.NoError(t, os.WriteFile(exe, []byte("bin"), 0o755))

	f := &fixture{}
	f.ctrl = controller.New(controller.Options{
		Executable: exe,
		Spawner: controller.SpawnFunc(func(s server.Server) (controller.Handle, error) {
			h := &fakeHandle{pid: 1001 + len(f.handles), done: make(chan struct{})}
			f.handles = append(f.handles, h)
			f.spawned = append(f.spawned, s)
			return h, nil
		}),
		LocalIPv4: func() (string, error) { return "192.168.1.5", nil },
	})
	return f
}

func press(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetPort("8080")

	m := New(Options{Controller: f.ctrl})
	assert.Equal(t, DefaultWidth, m.width)
	assert.Equal(t, DefaultHeight, m.height)
	assert.Equal(t, "8080", m.port.Value(), "port input prefilled")
	assert.NotNil(t, m.Init())
}

func TestTypingPortUpdatesURL(t *testing.T) {
	f := newFixture(t)
	var m tea.Model = New(Options{Controller: f.ctrl})

	m = typeText(m, "8080")
	assert.Equal(t, "http://192.168.1.5:8080", f.ctrl.View().URL)
	assert.Contains(t, m.View(), "http://192.168.1.5:8080")

	m, _ = m.Update(press(tea.KeyBackspace))
	assert.Equal(t, "http://192.168.1.5:808", f.ctrl.View().URL)
}

func TestStartWithEmptyFields(t *testing.T) {
	f := newFixture(t)
	var m tea.Model = New(Options{Controller: f.ctrl})

	m, cmd := m.Update(press(tea.KeyCtrlR))
	assert.Nil(t, cmd)
	assert.Empty(t, f.spawned)
	assert.Contains(t, m.View(), "folder path or port number is empty")
	assert.False(t, f.ctrl.View().CanStop)
}

func TestStartAndStop(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetServePath("/srv/files")
	var m tea.Model = New(Options{Controller: f.ctrl})
	m = typeText(m, "8080")

	m, cmd := m.Update(press(tea.KeyCtrlR))
	require.NotNil(t, cmd, "exit watcher scheduled")
	require.Len(t, f.spawned, 1)
	_, launchID := f.ctrl.Done()
	assert.Equal(t, "--path /srv/files --port 8080", f.spawned[0].CommandLine())
	assert.Contains(t, m.View(), "running (pid 1001)")

	// A second start is refused and the refusal is shown.
	m, _ = m.Update(press(tea.KeyCtrlR))
	assert.Len(t, f.spawned, 1)
	assert.Contains(t, m.View(), "server already running")
	assert.True(t, f.ctrl.View().CanStop)

	m, _ = m.Update(press(tea.KeyCtrlX))
	assert.False(t, f.ctrl.View().CanStop)
	assert.False(t, f.handles[0].Alive())
	assert.Contains(t, m.View(), "stopped")

	// The exit watcher fires for the killed process and is ignored.
	msg := cmd()
	assert.Equal(t, serverExitedMsg{launchID: launchID}, msg)
	m, _ = m.Update(msg)
	assert.Equal(t, "server stopped", f.ctrl.View().Status.Detail)
}

func TestServerExitReenablesStart(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetServePath("/srv/files")
	f.ctrl.SetPort("8080")
	var m tea.Model = New(Options{Controller: f.ctrl})

	m, cmd := m.Update(press(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	require.True(t, f.ctrl.View().CanStop)

	close(f.handles[0].done)
	m, _ = m.Update(cmd())

	v := f.ctrl.View()
	assert.False(t, v.CanStop)
	assert.True(t, v.CanStart)
	assert.Equal(t, session.KindProcess, v.Status.Kind)
	assert.Contains(t, m.View(), "server exited")
}

func TestStopWhenIdleIgnored(t *testing.T) {
	f := newFixture(t)
	var m tea.Model = New(Options{Controller: f.ctrl})

	_, cmd := m.Update(press(tea.KeyCtrlX))
	assert.Nil(t, cmd)
	assert.Empty(t, f.ctrl.View().Status.Detail)
}

func TestPickerCancel(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetServePath("/srv/files")
	var m tea.Model = New(Options{Controller: f.ctrl, StartDir: t.TempDir()})

	m, _ = m.Update(press(tea.KeyCtrlO))
	assert.Equal(t, modePicker, m.(Model).mode)
	assert.Contains(t, m.View(), "Choose Folder To Serve")

	m, _ = m.Update(press(tea.KeyEsc))
	assert.Equal(t, modeForm, m.(Model).mode)
	assert.Equal(t, session.KindPicker, f.ctrl.View().Status.Kind)
	assert.Equal(t, "/srv/files", f.ctrl.View().Path)
}

func TestPickerUseCurrentDirectory(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	var m tea.Model = New(Options{Controller: f.ctrl, StartDir: dir})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 400, Height: 40})

	m, _ = m.Update(press(tea.KeyCtrlO))
	m, _ = m.Update(press(tea.KeyCtrlD))

	assert.Equal(t, modeForm, m.(Model).mode)
	assert.Equal(t, dir, f.ctrl.View().Path)
	assert.Contains(t, m.View(), dir)
}

func TestPickerSelectWithEnter(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "public")
	require.NoError(t, os.Mkdir(sub, 0o755))

	var m tea.Model = New(Options{Controller: f.ctrl, StartDir: dir})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m, readDir := m.Update(press(tea.KeyCtrlO))
	require.NotNil(t, readDir)
	m, _ = m.Update(readDir())

	m, _ = m.Update(press(tea.KeyEnter))
	assert.Equal(t, modeForm, m.(Model).mode)
	assert.Equal(t, sub, f.ctrl.View().Path)
}

func TestWatchFailureLogged(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	var m tea.Model = New(Options{Controller: f.ctrl, Logger: log.New(&buf)})

	m, cmd := m.Update(exeWatchMsg{err: errors.New("too many open files")})
	assert.Nil(t, cmd)
	assert.Contains(t, buf.String(), "executable watch unavailable")
	assert.Contains(t, buf.String(), "too many open files")
	assert.Nil(t, m.(Model).exePresent)
}

func TestExecutablePresence(t *testing.T) {
	f := newFixture(t)
	var m tea.Model = New(Options{Controller: f.ctrl})

	m, _ = m.Update(exePresenceMsg{present: false})
	assert.Contains(t, m.View(), "FileServer.exe missing")

	m, _ = m.Update(exePresenceMsg{present: true})
	assert.Contains(t, m.View(), "FileServer.exe found")
}

func TestUpdateWindowSize(t *testing.T) {
	f := newFixture(t)
	var m tea.Model = New(Options{Controller: f.ctrl})

	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.(Model).width)
	assert.Equal(t, 40, m.(Model).height)
}

func TestUpdateQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyType
	}{
		{"CtrlC", tea.KeyCtrlC},
		{"Escape", tea.KeyEsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Options{Controller: newFixture(t).ctrl})
			_, cmd := m.Update(press(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}
