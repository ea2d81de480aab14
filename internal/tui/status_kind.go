package tui

// StatusKind indicates severity for status bar notices.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

type notice struct {
	text string
	kind StatusKind
}

func (n notice) render() string {
	switch n.kind {
	case StatusSuccess:
		return StatusSuccessStyle.Render(n.text)
	case StatusWarn:
		return StatusWarnStyle.Render(n.text)
	case StatusError:
		return StatusErrorStyle.Render("✗ " + n.text)
	default:
		return StatusInfoStyle.Render(n.text)
	}
}
