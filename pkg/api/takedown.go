package api

import "strings"

// TakedownAction is a state-changing operation an operator may invoke on a
// takedown notice.
type TakedownAction string

const (
	ActionSendEmail TakedownAction = "send-email"
	ActionMarkSent  TakedownAction = "mark-sent"
	ActionConfirm   TakedownAction = "confirm"
)

// AvailableActions returns the state-changing actions valid for a takedown
// in the given state. Pending notices can be dispatched or marked sent by
// hand; sent notices can only be confirmed; confirmado and rechazado are
// terminal.
func AvailableActions(state TakedownState) []TakedownAction {
	switch state {
	case TakedownPending:
		return []TakedownAction{ActionSendEmail, ActionMarkSent}
	case TakedownSent:
		return []TakedownAction{ActionConfirm}
	default:
		return nil
	}
}

// ExtraRecipientCount counts the additional recipients stored in a
// takedown's comma-separated extra-recipient field. Blank entries are
// ignored.
func ExtraRecipientCount(t *Takedown) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, part := range strings.Split(t.ExtraRecipients, ",") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
