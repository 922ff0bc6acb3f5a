package tooltip

import "time"

// State is the visibility state of a tooltip.
type State uint8

const (
	StateHidden State = iota
	StatePendingShow
	StateVisible
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StatePendingShow:
		return "pending"
	case StateVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Cause identifies what triggered a transition.
type Cause uint8

const (
	CauseShow    Cause = iota // pointer enter or focus
	CauseHide                 // pointer leave or blur
	CauseTimer                // delay elapsed
	CauseUnmount              // component teardown
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseShow:
		return "show"
	case CauseHide:
		return "hide"
	case CauseTimer:
		return "timer"
	case CauseUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// Transition describes one state change.
type Transition struct {
	ID string

	// Instance is unique per New call. Tooltips in different sessions may
	// share an ID; observers that track state across transitions key by
	// Instance.
	Instance uint64

	Position Position
	From     State
	To       State
	Cause    Cause
	At       time.Time

	// Cancelled is set when the transition stopped a pending reveal timer.
	Cancelled bool
}

// Observer is notified of every state change. Notifications for one
// tooltip are delivered in order, outside the tooltip's lock.
type Observer interface {
	ObserveTransition(Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Transition)

// ObserveTransition implements Observer.
func (f ObserverFunc) ObserveTransition(t Transition) { f(t) }
