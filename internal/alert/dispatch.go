package alert

import "sync"

// ButtonDispatchTable maps a dialog's buttons to a single callback that is
// invoked at most once with the resolved button index.
//
// Buttons are ordered cancel first (when present) followed by the other
// titles, matching the index convention of native alert dialogs.
type ButtonDispatchTable struct {
	cancel    string
	hasCancel bool
	others    []string
	handler   func(index int)

	mu       sync.Mutex
	resolved bool
}

// NewButtonDispatchTable builds a table. An empty cancelTitle means the dialog
// has no cancel button. handler may be nil for informational dialogs.
func NewButtonDispatchTable(cancelTitle string, otherTitles []string, handler func(index int)) *ButtonDispatchTable {
	others := make([]string, len(otherTitles))
	copy(others, otherTitles)
	return &ButtonDispatchTable{
		cancel:    cancelTitle,
		hasCancel: cancelTitle != "",
		others:    others,
		handler:   handler,
	}
}

// Titles returns the ordered button titles.
func (t *ButtonDispatchTable) Titles() []string {
	titles := make([]string, 0, t.Len())
	if t.hasCancel {
		titles = append(titles, t.cancel)
	}
	return append(titles, t.others...)
}

// Len returns the number of buttons.
func (t *ButtonDispatchTable) Len() int {
	if t.hasCancel {
		return len(t.others) + 1
	}
	return len(t.others)
}

// CancelIndex returns the cancel button index, or -1 when there is none.
func (t *ButtonDispatchTable) CancelIndex() int {
	if t.hasCancel {
		return 0
	}
	return -1
}

// FirstOtherIndex returns the index of the first non-cancel button, or -1
// when there are no other buttons.
func (t *ButtonDispatchTable) FirstOtherIndex() int {
	if len(t.others) == 0 {
		return -1
	}
	if t.hasCancel {
		return 1
	}
	return 0
}

// Valid reports whether index addresses a button.
func (t *ButtonDispatchTable) Valid(index int) bool {
	return index >= 0 && index < t.Len()
}

// Title returns the title of the button at index, or "" when out of range.
func (t *ButtonDispatchTable) Title(index int) string {
	if !t.Valid(index) {
		return ""
	}
	if t.hasCancel {
		if index == 0 {
			return t.cancel
		}
		return t.others[index-1]
	}
	return t.others[index]
}

// HasHandler reports whether a callback is registered.
func (t *ButtonDispatchTable) HasHandler() bool {
	return t.handler != nil
}

// Resolve invokes the handler with index and marks the table resolved.
// Only the first call has an effect; it returns true for that call.
func (t *ButtonDispatchTable) Resolve(index int) bool {
	t.mu.Lock()
	if t.resolved {
		t.mu.Unlock()
		return false
	}
	t.resolved = true
	t.mu.Unlock()

	if t.handler != nil {
		t.handler(index)
	}
	return true
}

// Resolved reports whether Resolve has run.
func (t *ButtonDispatchTable) Resolved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolved
}
