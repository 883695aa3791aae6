package lifecycle

import (
	"fmt"
	"strings"

	"rentdesk/internal/model"
)

// rejectReasonMinLen is the minimum trimmed length for a required reason.
const rejectReasonMinLen = 3

// Spec describes what a status-changing action needs and where it leads.
type Spec struct {
	// Target is the status the server is asked to write.
	Target model.Status

	// RequiresInput marks actions that cannot proceed without operator text
	// (the moderation gate opens a dialog for these).
	RequiresInput bool

	// OptionalInput marks actions that accept free text but do not demand it.
	OptionalInput bool

	// DefaultNote is attached as moderation notes when the operator supplies
	// nothing (currently only mark_pending uses this).
	DefaultNote string
}

var specs = map[Action]Spec{
	ActionApprove:     {Target: model.StatusActive},
	ActionActivate:    {Target: model.StatusActive},
	ActionReject:      {Target: model.StatusRejected, RequiresInput: true},
	ActionDeactivate:  {Target: model.StatusInactive, OptionalInput: true},
	ActionArchive:     {Target: model.StatusArchived, OptionalInput: true},
	ActionMarkPending: {Target: model.StatusPending, DefaultNote: "returned to moderation queue"},
	ActionMarkSold:    {Target: model.StatusSold},
	ActionMarkRented:  {Target: model.StatusRented},
	ActionSuspend:     {Target: model.StatusSuspended, RequiresInput: true},
	ActionBan:         {Target: model.StatusBanned, RequiresInput: true},

	// Subscription control actions hit dedicated endpoints; Target records
	// the status the server will report back.
	ActionCancel: {Target: model.StatusCancelled, OptionalInput: true},
	ActionRenew:  {Target: model.StatusActive},

	// Feature toggles carry their own payload and never validate text.
	ActionSetFeatured: {},
}

// Describe returns the registry entry for an action. ok is false for actions
// the registry does not know, which callers must treat as not dispatchable.
func Describe(action Action) (Spec, bool) {
	s, ok := specs[action]
	return s, ok
}

// ValidationError is a client-local input failure. It is surfaced inline
// next to the control and never reaches the network layer.
type ValidationError struct {
	Action Action
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Reason)
}

// Validate checks operator-supplied text against the action's input rule.
func (s Spec) Validate(action Action, input string) error {
	trimmed := strings.TrimSpace(input)
	if s.RequiresInput && len(trimmed) < rejectReasonMinLen {
		return &ValidationError{
			Action: action,
			Reason: fmt.Sprintf("a reason of at least %d characters is required", rejectReasonMinLen),
		}
	}
	return nil
}

// Note resolves the free-text note to send for an action: the operator's
// trimmed input when present, the action's default note otherwise.
func (s Spec) Note(input string) string {
	if t := strings.TrimSpace(input); t != "" {
		return t
	}
	return s.DefaultNote
}
