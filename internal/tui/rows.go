package tui

import (
	"strings"

	"rentdesk/internal/format"
	"rentdesk/internal/model"
)

// entityRow is the one-of-three union the list and detail panes work with.
// Exactly one of the pointers is set, matching resource.
type entityRow struct {
	resource     model.Resource
	property     *model.Property
	subscription *model.Subscription
	user         *model.User
}

func propertyRow(p model.Property) entityRow {
	return entityRow{resource: model.ResourceProperties, property: &p}
}

func subscriptionRow(s model.Subscription) entityRow {
	return entityRow{resource: model.ResourceSubscriptions, subscription: &s}
}

func userRow(u model.User) entityRow {
	return entityRow{resource: model.ResourceUsers, user: &u}
}

func (r entityRow) id() string {
	switch r.resource {
	case model.ResourceProperties:
		return r.property.ID
	case model.ResourceSubscriptions:
		return r.subscription.ID
	default:
		return r.user.ID
	}
}

func (r entityRow) status() model.Status {
	switch r.resource {
	case model.ResourceProperties:
		return r.property.Status
	case model.ResourceSubscriptions:
		return r.subscription.Status
	default:
		return r.user.Status
	}
}

func (r entityRow) subtype() string {
	switch r.resource {
	case model.ResourceProperties:
		return r.property.Subtype()
	case model.ResourceSubscriptions:
		return r.subscription.Subtype()
	default:
		return r.user.Subtype()
	}
}

func (r entityRow) name() string {
	var s string
	switch r.resource {
	case model.ResourceProperties:
		s = r.property.Title
	case model.ResourceSubscriptions:
		s = r.subscription.Plan
	default:
		s = r.user.Name
	}
	s = strings.TrimSpace(s)
	if s == "" {
		s = "(untitled)"
	}
	return s
}

func (r entityRow) featured() bool {
	return r.resource == model.ResourceProperties && r.property.Featured
}

func (r entityRow) markdown() string {
	switch r.resource {
	case model.ResourceProperties:
		return format.PropertyMarkdown(*r.property)
	case model.ResourceSubscriptions:
		return format.SubscriptionMarkdown(*r.subscription)
	default:
		return format.UserMarkdown(*r.user)
	}
}

// rowItem adapts an entityRow for the bubbles list. pending is set while a
// mutation on this entity is in flight.
type rowItem struct {
	row     entityRow
	pending bool
}

func (i rowItem) FilterValue() string { return i.row.name() }
