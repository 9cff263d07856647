package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ScrollPolicy decides whether the mouse wheel may scroll the document
// viewport away from the cursor.
type ScrollPolicy int

const (
	// ScrollWheel lets the wheel scroll the document; the cursor stays put
	// and the next edit brings it back into view.
	ScrollWheel ScrollPolicy = iota
	// ScrollFollowCursor drops wheel events. The viewport only moves to keep
	// the cursor visible.
	ScrollFollowCursor
)

func (p ScrollPolicy) String() string {
	switch p {
	case ScrollWheel:
		return "wheel"
	case ScrollFollowCursor:
		return "cursor"
	}
	return fmt.Sprintf("ScrollPolicy(%d)", int(p))
}

// ParseScrollPolicy reads the config file form of a policy.
func ParseScrollPolicy(s string) (ScrollPolicy, error) {
	switch s {
	case "wheel":
		return ScrollWheel, nil
	case "cursor":
		return ScrollFollowCursor, nil
	}
	return ScrollWheel, fmt.Errorf("unknown scroll policy %q", s)
}

// passes reports whether the viewport should see msg.
func (p ScrollPolicy) passes(msg tea.MouseMsg) bool {
	return p == ScrollWheel || !isWheel(msg)
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}
