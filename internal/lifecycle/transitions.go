// Package lifecycle is the single source of truth for which mutations the
// console may propose for an entity. UI code only ever calls LegalActions
// and Describe; no status or action string is hardcoded elsewhere.
package lifecycle

import "rentdesk/internal/model"

// Action is something an operator can do to an entity. Status-changing
// actions are governed by the transition table; SetFeatured is a separate
// family toggled independently of status.
type Action string

const (
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionActivate    Action = "activate"
	ActionDeactivate  Action = "deactivate"
	ActionArchive     Action = "archive"
	ActionMarkPending Action = "mark_pending"
	ActionMarkSold    Action = "mark_sold"
	ActionMarkRented  Action = "mark_rented"
	ActionSuspend     Action = "suspend"
	ActionBan         Action = "ban"
	ActionCancel      Action = "cancel"
	ActionRenew       Action = "renew"

	// Feature toggle family; not part of the status transition table.
	ActionSetFeatured Action = "set_featured"
)

// LegalActions returns the status-changing actions an operator may propose
// for an entity in the given status. The subtype narrows the result (e.g. a
// sale listing can be marked sold). The function is pure and total: every
// input yields a defined result, and unknown statuses yield an empty set
// rather than falling open.
func LegalActions(resource model.Resource, status model.Status, subtype string) []Action {
	switch resource {
	case model.ResourceProperties:
		return propertyActions(status, model.ListingType(subtype))
	case model.ResourceSubscriptions:
		return subscriptionActions(status)
	case model.ResourceUsers:
		return userActions(status)
	default:
		return nil
	}
}

func propertyActions(status model.Status, listing model.ListingType) []Action {
	switch status {
	case model.StatusPending:
		return []Action{ActionApprove, ActionReject}
	case model.StatusActive:
		out := []Action{ActionDeactivate, ActionArchive}
		switch listing {
		case model.ListingSale:
			out = append(out, ActionMarkSold)
		case model.ListingRent, model.ListingShortlet:
			out = append(out, ActionMarkRented)
		}
		return out
	case model.StatusInactive:
		return []Action{ActionActivate, ActionMarkPending}
	case model.StatusRejected:
		return []Action{ActionMarkPending, ActionActivate}
	case model.StatusArchived:
		return []Action{ActionActivate}
	case model.StatusSold, model.StatusRented:
		return []Action{ActionActivate}
	default:
		return nil
	}
}

func subscriptionActions(status model.Status) []Action {
	switch status {
	case model.StatusActive:
		return []Action{ActionCancel}
	case model.StatusPending:
		return []Action{ActionActivate, ActionCancel}
	case model.StatusCancelled, model.StatusExpired:
		return []Action{ActionRenew}
	case model.StatusInactive:
		return []Action{ActionActivate}
	default:
		return nil
	}
}

func userActions(status model.Status) []Action {
	switch status {
	case model.StatusPending:
		return []Action{ActionActivate, ActionReject}
	case model.StatusActive:
		return []Action{ActionSuspend, ActionBan}
	case model.StatusSuspended:
		return []Action{ActionActivate, ActionBan}
	case model.StatusBanned:
		return []Action{ActionActivate}
	default:
		return nil
	}
}

// Allows reports whether the action is legal for the given entity state.
func Allows(resource model.Resource, status model.Status, subtype string, action Action) bool {
	for _, a := range LegalActions(resource, status, subtype) {
		if a == action {
			return true
		}
	}
	return false
}
