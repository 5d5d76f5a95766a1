package alert

// Presenter creates dialogs on a UI surface.
//
// onTap must be called by the dialog whenever the user selects a button. It
// does not block and may be called from any goroutine.
type Presenter interface {
	Create(title, message string, buttons []string, onTap func(index int)) (Dialog, error)
}

// Dialog is a presented modal owned by exactly one Session.
//
// Methods are always called from the session's Loop.
type Dialog interface {
	// Show makes the dialog visible.
	Show() error
	// SetMessage replaces the message text.
	SetMessage(text string)
	// Dismiss hides the dialog. No further calls follow.
	Dismiss()
}

// Visibility is the presentation state of a session's dialog.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
	Dismissed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	case Dismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}
