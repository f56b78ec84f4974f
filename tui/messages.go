package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type exeWatchMsg struct {
	ch  <-chan bool
	err error
}

type exePresenceMsg struct {
	present bool
	ch      <-chan bool
}

type serverExitedMsg struct {
	launchID string
}

func startWatch(ctx context.Context, watch WatchFunc, exe string) tea.Cmd {
	return func() tea.Msg {
		ch, err := watch(ctx, exe)
		return exeWatchMsg{ch: ch, err: err}
	}
}

// recvPresence waits for the next watcher value. A closed channel ends the
// subscription.
func recvPresence(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		present, ok := <-ch
		if !ok {
			return nil
		}
		return exePresenceMsg{present: present, ch: ch}
	}
}

// waitExit reports when the attached server exits on its own.
func waitExit(done <-chan struct{}, launchID string) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return serverExitedMsg{launchID: launchID}
	}
}
