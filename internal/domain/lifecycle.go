package domain

import (
	"errors"

	"github.com/funfair-pos/api/internal/enum"
)

// ErrInvalidState matches every rejected status transition.
var ErrInvalidState = errors.New("invalid order state")

// Transition is a named status change with a single legal source status.
type Transition struct {
	Name string
	From enum.OrderStatus
	To   enum.OrderStatus
	// rejection is the message returned when the order is not in From.
	rejection string
}

// The full state machine:
//
//	NEW --await--> AWAITING --complete--> COMPLETED
//	NEW --cancel--> CANCELED
var (
	Await = Transition{
		Name:      "await",
		From:      enum.OrderStatusNew,
		To:        enum.OrderStatusAwaiting,
		rejection: "only NEW orders can be awaiting",
	}
	Complete = Transition{
		Name:      "complete",
		From:      enum.OrderStatusAwaiting,
		To:        enum.OrderStatusCompleted,
		rejection: "only AWAITING orders can be completed",
	}
	Cancel = Transition{
		Name:      "cancel",
		From:      enum.OrderStatusNew,
		To:        enum.OrderStatusCanceled,
		rejection: "only NEW orders can be canceled",
	}
)

// TransitionError reports a transition attempted from the wrong status.
type TransitionError struct {
	Transition Transition
	Current    enum.OrderStatus
}

func (e *TransitionError) Error() string {
	return e.Transition.rejection
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidState
}

// Apply returns the status that results from applying t to current.
func (t Transition) Apply(current enum.OrderStatus) (enum.OrderStatus, error) {
	if current != t.From {
		return current, &TransitionError{Transition: t, Current: current}
	}
	return t.To, nil
}
