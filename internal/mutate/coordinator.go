// Package mutate coordinates status and feature mutations against the
// marketplace service. One Coordinator is shared by every screen and CLI
// command, so the per-entity pending guarantee holds process-wide rather
// than being re-derived per view.
package mutate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"rentdesk/internal/api"
	"rentdesk/internal/cache"
	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
)

// ErrMutationInFlight is returned when a second status-changing request is
// dispatched for an entity whose first request has not settled. The UI
// normally prevents this by disabling controls; the coordinator refuses
// anyway so programmatic misuse cannot double-fire.
var ErrMutationInFlight = errors.New("a mutation for this entity is already in flight")

// API is the slice of the REST client the coordinator needs. It is an
// interface so tests can drive the coordinator with a scripted double.
type API interface {
	ChangeStatus(ctx context.Context, resource model.Resource, id string, change api.StatusChange) (*model.Envelope, error)
	SetFeatured(ctx context.Context, resource model.Resource, id string, featured bool, until *time.Time) (*model.Envelope, error)
	CancelSubscription(ctx context.Context, id, reason string) (*model.Envelope, error)
	RenewSubscription(ctx context.Context, id string, cycle model.BillingCycle) (*model.Envelope, error)
}

// EntityRef names the entity a dispatch targets, with enough current state
// to check the transition table.
type EntityRef struct {
	Resource model.Resource
	ID       string
	Status   model.Status
	Subtype  string
}

func (r EntityRef) key() string { return string(r.Resource) + "/" + r.ID }

// Input carries operator-supplied payload for an action. Text serves as the
// rejection reason or moderation note depending on the action; the feature
// fields apply only to ActionSetFeatured; BillingCycle only to ActionRenew.
type Input struct {
	Text          string
	Featured      bool
	FeaturedUntil *time.Time
	BillingCycle  model.BillingCycle
}

// Outcome is a settled, successful mutation.
type Outcome struct {
	Message string
	Data    []byte
}

type Coordinator struct {
	api   API
	cache cache.Store

	mu      sync.Mutex
	pending map[string]lifecycle.Action
}

func NewCoordinator(api API, store cache.Store) *Coordinator {
	return &Coordinator{
		api:     api,
		cache:   store,
		pending: map[string]lifecycle.Action{},
	}
}

// Pending reports the in-flight action for an entity, if any. Absence means
// the entity is mutable.
func (c *Coordinator) Pending(resource model.Resource, id string) (lifecycle.Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.pending[string(resource)+"/"+id]
	return a, ok
}

// PendingKeys returns the "<resource>/<id>" keys with in-flight mutations,
// sorted for stable rendering.
func (c *Coordinator) PendingKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.pending))
	for k := range c.pending {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Coordinator) begin(key string, action lifecycle.Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.pending[key]; busy {
		return ErrMutationInFlight
	}
	c.pending[key] = action
	return nil
}

func (c *Coordinator) finish(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, key)
}

// Dispatch validates, guards, and executes one mutation.
//
// Ordering is strict: the caches are invalidated only after the server
// confirms success, never optimistically and never on failure. The
// pending marker is cleared on both outcomes so a failed entity is
// immediately retryable.
func (c *Coordinator) Dispatch(ctx context.Context, ref EntityRef, action lifecycle.Action, input Input) (Outcome, error) {
	spec, ok := lifecycle.Describe(action)
	if !ok {
		return Outcome{}, fmt.Errorf("unknown action %q", action)
	}
	if err := spec.Validate(action, input.Text); err != nil {
		return Outcome{}, err
	}
	// Feature toggles sit outside the status table; everything else must be
	// legal for the entity's current state when the caller knows it. Stale
	// state is still possible (another operator may have moved the entity);
	// the server is the source of truth and will reject those.
	if action != lifecycle.ActionSetFeatured && ref.Status != "" {
		if !lifecycle.Allows(ref.Resource, ref.Status, ref.Subtype, action) {
			return Outcome{}, &lifecycle.ValidationError{
				Action: action,
				Reason: fmt.Sprintf("not allowed for %s in status %q", ref.Resource, ref.Status),
			}
		}
	}

	key := ref.key()
	if err := c.begin(key, action); err != nil {
		return Outcome{}, err
	}
	defer c.finish(key)

	env, err := c.execute(ctx, ref, action, spec, input)
	if err != nil {
		return Outcome{}, err
	}

	cache.InvalidateEntity(c.cache, ref.Resource, ref.ID)

	msg := env.Message
	if msg == "" {
		msg = defaultMessage(ref.Resource, action)
	}
	return Outcome{Message: msg, Data: env.Data}, nil
}

func (c *Coordinator) execute(ctx context.Context, ref EntityRef, action lifecycle.Action, spec lifecycle.Spec, input Input) (*model.Envelope, error) {
	switch action {
	case lifecycle.ActionSetFeatured:
		return c.api.SetFeatured(ctx, ref.Resource, ref.ID, input.Featured, input.FeaturedUntil)
	case lifecycle.ActionCancel:
		if ref.Resource == model.ResourceSubscriptions {
			return c.api.CancelSubscription(ctx, ref.ID, input.Text)
		}
	case lifecycle.ActionRenew:
		if ref.Resource == model.ResourceSubscriptions {
			return c.api.RenewSubscription(ctx, ref.ID, input.BillingCycle)
		}
	}

	change := api.StatusChange{Status: spec.Target}
	if action == lifecycle.ActionReject {
		change.RejectionReason = spec.Note(input.Text)
	} else {
		change.ModerationNotes = spec.Note(input.Text)
	}
	return c.api.ChangeStatus(ctx, ref.Resource, ref.ID, change)
}

func defaultMessage(resource model.Resource, action lifecycle.Action) string {
	noun := "entity"
	switch resource {
	case model.ResourceProperties:
		noun = "property"
	case model.ResourceSubscriptions:
		noun = "subscription"
	case model.ResourceUsers:
		noun = "user"
	}
	switch action {
	case lifecycle.ActionApprove:
		return noun + " approved"
	case lifecycle.ActionReject:
		return noun + " rejected"
	case lifecycle.ActionActivate:
		return noun + " activated"
	case lifecycle.ActionDeactivate:
		return noun + " deactivated"
	case lifecycle.ActionArchive:
		return noun + " archived"
	case lifecycle.ActionMarkPending:
		return noun + " returned to moderation"
	case lifecycle.ActionMarkSold:
		return noun + " marked sold"
	case lifecycle.ActionMarkRented:
		return noun + " marked rented"
	case lifecycle.ActionSuspend:
		return noun + " suspended"
	case lifecycle.ActionBan:
		return noun + " banned"
	case lifecycle.ActionCancel:
		return noun + " cancelled"
	case lifecycle.ActionRenew:
		return noun + " renewed"
	case lifecycle.ActionSetFeatured:
		return noun + " feature flag updated"
	default:
		return string(action) + " applied"
	}
}
