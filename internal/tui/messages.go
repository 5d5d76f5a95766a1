package tui

// ShowMsg presents a dialog. It replaces any dialog currently on screen.
type ShowMsg struct {
	ID          int
	Title       string
	Message     string
	Buttons     []string
	CancelIndex int
	OnTap       func(index int)
}

// MessageMsg replaces the message text of dialog ID.
type MessageMsg struct {
	ID   int
	Text string
}

// DismissMsg removes dialog ID from the screen.
type DismissMsg struct {
	ID int
}
