package lifecycle

import (
	"errors"
	"testing"

	"rentdesk/internal/model"
)

func TestDescribeTargets(t *testing.T) {
	t.Parallel()

	cases := map[Action]model.Status{
		ActionApprove:     model.StatusActive,
		ActionReject:      model.StatusRejected,
		ActionDeactivate:  model.StatusInactive,
		ActionArchive:     model.StatusArchived,
		ActionMarkPending: model.StatusPending,
		ActionMarkSold:    model.StatusSold,
		ActionMarkRented:  model.StatusRented,
		ActionSuspend:     model.StatusSuspended,
		ActionCancel:      model.StatusCancelled,
	}
	for action, target := range cases {
		spec, ok := Describe(action)
		if !ok {
			t.Fatalf("Describe(%s): unknown action", action)
		}
		if spec.Target != target {
			t.Fatalf("Describe(%s).Target = %s, want %s", action, spec.Target, target)
		}
	}

	if _, ok := Describe(Action("frobnicate")); ok {
		t.Fatal("Describe should not know made-up actions")
	}
}

func TestValidateRequiredReason(t *testing.T) {
	t.Parallel()

	spec, _ := Describe(ActionReject)
	for _, bad := range []string{"", "ab", "  ab  ", " \t "} {
		err := spec.Validate(ActionReject, bad)
		if err == nil {
			t.Fatalf("Validate(reject, %q): expected error", bad)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate(reject, %q): expected *ValidationError, got %T", bad, err)
		}
	}
	if err := spec.Validate(ActionReject, "abc"); err != nil {
		t.Fatalf("Validate(reject, abc): unexpected error %v", err)
	}
	if err := spec.Validate(ActionReject, "  Missing title deed  "); err != nil {
		t.Fatalf("Validate(reject, padded reason): unexpected error %v", err)
	}
}

func TestValidateOptionalInput(t *testing.T) {
	t.Parallel()

	for _, action := range []Action{ActionDeactivate, ActionArchive, ActionCancel} {
		spec, ok := Describe(action)
		if !ok {
			t.Fatalf("Describe(%s): unknown action", action)
		}
		if spec.RequiresInput {
			t.Fatalf("%s must not require input", action)
		}
		if err := spec.Validate(action, ""); err != nil {
			t.Fatalf("Validate(%s, empty): unexpected error %v", action, err)
		}
	}
}

func TestNoteFallsBackToDefault(t *testing.T) {
	t.Parallel()

	spec, _ := Describe(ActionMarkPending)
	if got := spec.Note("   "); got != "returned to moderation queue" {
		t.Fatalf("Note(blank) = %q, want default", got)
	}
	if got := spec.Note(" relisting after fix "); got != "relisting after fix" {
		t.Fatalf("Note(custom) = %q", got)
	}
}
