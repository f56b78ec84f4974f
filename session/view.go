package session

// View is what the UI renders. It is recomputed from a Session and the most
// recent Result and never stored on its own.
type View struct {
	CanStart bool
	CanStop  bool
	State    State
	Path     string
	Port     string
	URL      string
	Status   Result
}

// Derive computes the View for s. last is the result of the most recent
// operation and becomes the status line.
func Derive(s Session, last Result) View {
	running := s.State() == Running
	return View{
		CanStart: s.servePath != "" && s.port != "" && !running,
		CanStop:  running,
		State:    s.State(),
		Path:     s.servePath,
		Port:     s.port,
		URL:      s.serveURL,
		Status:   last,
	}
}
