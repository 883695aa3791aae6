package tui

import (
	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"
)

// Async messages carry a seq so stale responses (from before a filter or
// nav change) are dropped instead of clobbering newer state.

type listLoadedMsg struct {
	seq      int
	resource model.Resource
	rows     []entityRow
	meta     model.PaginationMeta
	err      error
}

type detailLoadedMsg struct {
	seq      int
	resource model.Resource
	row      entityRow
	err      error
}

type mutationDoneMsg struct {
	ref     mutate.EntityRef
	action  lifecycle.Action
	outcome mutate.Outcome
	err     error
}

type feedbackClearMsg struct{ seq int }
