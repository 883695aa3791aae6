package model

import (
	"fmt"
	"time"
)

// Resource identifies a server-owned collection. It is also the path segment
// used by the remote API (GET /{resource}, PUT /{resource}/{id}/status, ...).
type Resource string

const (
	ResourceProperties    Resource = "properties"
	ResourceSubscriptions Resource = "subscriptions"
	ResourceUsers         Resource = "users"
)

// Status is a lifecycle status value. Each resource has its own closed enum;
// the shared type keeps the transition table and coordinator resource-agnostic.
type Status string

// Property statuses.
const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRejected Status = "rejected"
	StatusArchived Status = "archived"
	StatusSold     Status = "sold"
	StatusRented   Status = "rented"
)

// Subscription statuses (active/pending/inactive are shared with properties).
const (
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// User statuses (active/pending are shared).
const (
	StatusSuspended Status = "suspended"
	StatusBanned    Status = "banned"
)

// ListingType narrows which property transitions are legal (a sale listing
// can be marked sold, a rent/shortlet listing can be marked rented).
type ListingType string

const (
	ListingRent     ListingType = "rent"
	ListingSale     ListingType = "sale"
	ListingShortlet ListingType = "shortlet"
)

type BillingCycle string

const (
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
)

type UserRole string

const (
	RoleTenant   UserRole = "tenant"
	RoleLandlord UserRole = "landlord"
	RoleAgent    UserRole = "agent"
)

// Property is a marketplace listing as returned by the admin API.
// Timestamps are server-assigned and read-only on this side.
type Property struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	ListingType     ListingType `json:"listingType"`
	Status          Status      `json:"status"`
	Featured        bool        `json:"featured"`
	FeaturedUntil   *time.Time  `json:"featuredUntil,omitempty"`
	Price           float64     `json:"price"`
	City            string      `json:"city,omitempty"`
	OwnerID         string      `json:"ownerId,omitempty"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	ModerationNotes string      `json:"moderationNotes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type Subscription struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"userId"`
	Plan               string       `json:"plan"`
	BillingCycle       BillingCycle `json:"billingCycle"`
	Status             Status       `json:"status"`
	AutoRenew          bool         `json:"autoRenew"`
	Amount             float64      `json:"amount"`
	CancellationReason string       `json:"cancellationReason,omitempty"`
	CurrentPeriodEnd   *time.Time   `json:"currentPeriodEnd,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             UserRole  `json:"role"`
	Status           Status    `json:"status"`
	Verified         bool      `json:"verified"`
	SuspensionReason string    `json:"suspensionReason,omitempty"`
	ModerationNotes  string    `json:"moderationNotes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Subtype returns the secondary classifier the transition table keys on.
func (p Property) Subtype() string     { return string(p.ListingType) }
func (s Subscription) Subtype() string { return string(s.BillingCycle) }
func (u User) Subtype() string         { return string(u.Role) }

// FormatAmount renders a currency amount for display. The client only ever
// formats money; fee computation belongs to the server.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
