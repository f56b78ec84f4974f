package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonnes/fsrunner/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownStopsRunningServer(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	exe, err := os.Executable()
	require.NoError(t, err)

	argsFile := filepath.Join(dir, "args")
	t.Setenv("FSR_FAKE_SERVER", argsFile)
	t.Setenv("FSR_FAKE_SERVER_WAIT", "1")

	cfg := config.Default()
	cfg.Executable = exe
	cfg.Path = dir
	cfg.Port = "8080"
	a := newApp(cfg)
	a.prefill()

	r := a.ctrl.Start()
	require.False(t, r.Failed(), r.Detail)
	done, _ := a.ctrl.Done()
	require.NotNil(t, done)

	require.NoError(t, a.shutdown())
	assert.False(t, a.ctrl.View().CanStop)
	assert.Equal(t, "server stopped", a.ctrl.View().Status.Detail)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server still running after shutdown")
	}
}

func TestShutdownWithoutServer(t *testing.T) {
	t.Chdir(t.TempDir())

	a := newApp(config.Default())
	require.NoError(t, a.shutdown())
	assert.False(t, a.ctrl.View().CanStop)
}
