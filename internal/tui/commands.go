package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/cache"
	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"
)

// Background operations get their own deadline; the program context is not
// plumbed through bubbletea messages.
const opTimeout = 30 * time.Second

// loadListCmd fetches the current page of the current collection. Bumps the
// list seq so responses to superseded requests are ignored.
func (m *appModel) loadListCmd() tea.Cmd {
	m.listSeq++
	m.loadingList = true
	seq := m.listSeq
	res := m.currentResource()
	filter := m.currentFilter()
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		msg := listLoadedMsg{seq: seq, resource: res}
		switch res {
		case model.ResourceProperties:
			page, err := client.ListProperties(ctx, filter)
			if err != nil {
				msg.err = err
				return msg
			}
			for _, p := range page.Items {
				msg.rows = append(msg.rows, propertyRow(p))
			}
			msg.meta = page.Meta
		case model.ResourceSubscriptions:
			page, err := client.ListSubscriptions(ctx, filter)
			if err != nil {
				msg.err = err
				return msg
			}
			for _, s := range page.Items {
				msg.rows = append(msg.rows, subscriptionRow(s))
			}
			msg.meta = page.Meta
		case model.ResourceUsers:
			page, err := client.ListUsers(ctx, filter)
			if err != nil {
				msg.err = err
				return msg
			}
			for _, u := range page.Items {
				msg.rows = append(msg.rows, userRow(u))
			}
			msg.meta = page.Meta
		}
		return msg
	}
}

func (m *appModel) loadDetailCmd(res model.Resource, id string) tea.Cmd {
	m.detailSeq++
	m.loadingDetail = true
	seq := m.detailSeq
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		msg := detailLoadedMsg{seq: seq, resource: res}
		switch res {
		case model.ResourceProperties:
			p, err := client.GetProperty(ctx, id)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.row = propertyRow(*p)
		case model.ResourceSubscriptions:
			s, err := client.GetSubscription(ctx, id)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.row = subscriptionRow(*s)
		case model.ResourceUsers:
			u, err := client.GetUser(ctx, id)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.row = userRow(*u)
		}
		return msg
	}
}

// dispatchCmd runs one mutation through the coordinator and reports its
// settlement. The in-flight marker is stamped by the caller before the
// command runs.
func (m *appModel) dispatchCmd(ref mutate.EntityRef, action lifecycle.Action, input mutate.Input) tea.Cmd {
	coord := m.deps.Coord
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		out, err := coord.Dispatch(ctx, ref, action, input)
		return mutationDoneMsg{ref: ref, action: action, outcome: out, err: err}
	}
}

// invalidateList drops the cached pages of the current collection so the
// next load goes to the network (manual refresh).
func (m *appModel) invalidateList() {
	cache.InvalidateCollection(m.deps.Client.Cache, m.currentResource())
}
