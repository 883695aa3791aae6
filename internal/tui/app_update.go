package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initMsg:
		return m, m.loadListCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetSize(m.listWidth(), m.bodyHeight())
		return m, nil

	case listLoadedMsg:
		if msg.seq != m.listSeq || msg.resource != m.currentResource() {
			return m, nil
		}
		m.loadingList = false
		if msg.err != nil {
			m.listErr = msg.err.Error()
			return m, nil
		}
		m.listErr = ""
		m.meta = msg.meta
		items := make([]list.Item, 0, len(msg.rows))
		for _, r := range msg.rows {
			items = append(items, rowItem{row: r})
		}
		m.rows.SetItems(items)
		m.refreshPending()
		return m, nil

	case detailLoadedMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.loadingDetail = false
		if msg.err != nil {
			return m, m.showFeedback(msg.err.Error(), true)
		}
		row := msg.row
		m.detail = &row
		return m, nil

	case mutationDoneMsg:
		return m.settleMutation(msg)

	case feedbackClearMsg:
		if msg.seq == m.feedbackSeq {
			m.feedbackText = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// settleMutation applies one mutation settlement: clear the in-flight
// marker, close or annotate the dialog, and refetch what the write
// invalidated.
func (m appModel) settleMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	// A rejected double-dispatch must not clear the marker of the mutation
	// that is still running.
	if !errors.Is(msg.err, mutate.ErrMutationInFlight) {
		delete(m.inFlight, refKey(msg.ref))
		m.refreshPending()
	}

	if msg.err != nil {
		if m.modal == modalInput && m.applying {
			// Dialog stays open so the operator can fix the input and retry.
			m.applying = false
			m.modalErr = msg.err.Error()
			return m, nil
		}
		return m, m.showFeedback(msg.err.Error(), true)
	}

	m.closeModal()
	cmds := []tea.Cmd{
		m.showFeedback(msg.outcome.Message, false),
	}
	if msg.ref.Resource == m.currentResource() {
		cmds = append(cmds, m.loadListCmd())
	}
	if m.detail != nil && m.detail.resource == msg.ref.Resource && m.detail.id() == msg.ref.ID {
		cmds = append(cmds, m.loadDetailCmd(msg.ref.Resource, msg.ref.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.debugLogf("key pane=%d modal=%d str=%q", m.pane, m.modal, msg.String())

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.modal {
	case modalActions:
		return m.handleActionsKey(msg)
	case modalInput, modalSearch:
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.pane = (m.pane + 1) % 3
		return m, nil
	case "esc":
		switch m.pane {
		case paneDetail:
			m.pane = paneList
		case paneList:
			m.pane = paneNav
		}
		return m, nil
	}

	switch m.pane {
	case paneNav:
		return m.handleNavKey(msg)
	case paneList:
		return m.handleListKey(msg)
	default:
		return m.handleDetailKey(msg)
	}
}

func (m appModel) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.navIndex > 0 {
			m.navIndex--
			m.detail = nil
			return m, m.loadListCmd()
		}
	case "down", "j":
		if m.navIndex < len(m.leaves)-1 {
			m.navIndex++
			m.detail = nil
			return m, m.loadListCmd()
		}
	case "enter", "right", "l":
		m.pane = paneList
		if len(m.rows.Items()) == 0 && !m.loadingList {
			return m, m.loadListCmd()
		}
	}
	return m, nil
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.pane = paneDetail
		return m, m.loadDetailCmd(row.resource, row.id())

	case "a":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, m.openActions(row)

	case "f":
		return m.toggleFeatured()

	case "n":
		if m.meta.HasNextPage {
			m.setFilter(m.currentFilter().WithPage(m.currentFilter().Page() + 1))
			return m, m.loadListCmd()
		}
		return m, nil

	case "p":
		if m.meta.HasPrevPage {
			m.setFilter(m.currentFilter().WithPage(m.currentFilter().Page() - 1))
			return m, m.loadListCmd()
		}
		return m, nil

	case "s":
		m.setFilter(m.currentFilter().WithStatus(nextStatusFilter(m.currentResource(), m.currentFilter().Status())))
		return m, m.loadListCmd()

	case "t":
		if m.currentResource() == model.ResourceProperties {
			m.setFilter(m.currentFilter().WithSubtype(nextSubtypeFilter(m.currentFilter().Subtype())))
			return m, m.loadListCmd()
		}
		return m, nil

	case "F":
		if m.currentResource() == model.ResourceProperties {
			m.setFilter(m.currentFilter().WithFeaturedOnly(!m.currentFilter().FeaturedOnly()))
			return m, m.loadListCmd()
		}
		return m, nil

	case "/":
		m.modal = modalSearch
		m.modalErr = ""
		m.input.SetValue(m.currentFilter().Search())
		m.input.Placeholder = "search"
		return m, m.input.Focus()

	case "R":
		m.invalidateList()
		return m, m.loadListCmd()
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if m.detail != nil {
			return m, m.openActions(*m.detail)
		}
	case "f":
		return m.toggleFeatured()
	}
	return m, nil
}

// toggleFeatured dispatches the feature flip for the focused listing
// directly; it needs no operator input so no dialog is involved.
func (m appModel) toggleFeatured() (tea.Model, tea.Cmd) {
	var row entityRow
	if m.pane == paneDetail && m.detail != nil {
		row = *m.detail
	} else if r, ok := m.selectedRow(); ok {
		row = r
	} else {
		return m, nil
	}
	if row.resource != model.ResourceProperties {
		return m, nil
	}

	ref := mutate.EntityRef{
		Resource: row.resource,
		ID:       row.id(),
		Status:   row.status(),
		Subtype:  row.subtype(),
	}
	if _, busy := m.inFlight[refKey(ref)]; busy {
		return m, m.showFeedback("another change is still applying to "+ref.ID, true)
	}
	m.inFlight[refKey(ref)] = lifecycle.ActionSetFeatured
	m.refreshPending()
	return m, m.dispatchCmd(ref, lifecycle.ActionSetFeatured, mutate.Input{Featured: !row.featured()})
}

func (m appModel) handleActionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "up", "k":
		if m.actionIndex > 0 {
			m.actionIndex--
		}
		return m, nil
	case "down", "j":
		if m.actionIndex < len(m.actionChoices)-1 {
			m.actionIndex++
		}
		return m, nil
	case "enter":
		action := m.actionChoices[m.actionIndex]
		spec, ok := lifecycle.Describe(action)
		if !ok {
			m.closeModal()
			return m, nil
		}
		if spec.RequiresInput || spec.OptionalInput {
			m.modal = modalInput
			m.modalAction = action
			m.modalErr = ""
			m.area.SetValue("")
			if spec.RequiresInput {
				m.area.Placeholder = "reason (required)"
			} else {
				m.area.Placeholder = "note (optional)"
			}
			return m, m.area.Focus()
		}
		return m.startMutation(action, mutate.Input{Featured: !m.featuredForModalRef()})
	}
	return m, nil
}

func (m appModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.applying {
		// The dialog is locked until the in-flight mutation settles.
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		if m.modal == modalSearch {
			text := m.input.Value()
			m.closeModal()
			m.setFilter(m.currentFilter().WithSearch(text))
			return m, m.loadListCmd()
		}
		spec, _ := lifecycle.Describe(m.modalAction)
		if err := spec.Validate(m.modalAction, m.area.Value()); err != nil {
			var verr *lifecycle.ValidationError
			if errors.As(err, &verr) {
				m.modalErr = verr.Reason
			} else {
				m.modalErr = err.Error()
			}
			return m, nil
		}
		return m.startMutation(m.modalAction, mutate.Input{Text: m.area.Value()})
	}

	var cmd tea.Cmd
	if m.modal == modalSearch {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.area, cmd = m.area.Update(msg)
	}
	return m, cmd
}

// startMutation stamps the in-flight marker and fires the dispatch. Input
// dialogs stay open in a locked "applying" state until settlement; the
// action picker closes immediately.
func (m appModel) startMutation(action lifecycle.Action, input mutate.Input) (tea.Model, tea.Cmd) {
	ref := m.modalRef
	if _, busy := m.inFlight[refKey(ref)]; busy {
		m.closeModal()
		return m, m.showFeedback("another change is still applying to "+ref.ID, true)
	}
	m.inFlight[refKey(ref)] = action
	m.refreshPending()

	if m.modal == modalInput {
		m.applying = true
	} else {
		m.closeModal()
	}
	return m, m.dispatchCmd(ref, action, input)
}

func (m appModel) featuredForModalRef() bool {
	for _, it := range m.rows.Items() {
		if ri, ok := it.(rowItem); ok && ri.row.id() == m.modalRef.ID {
			return ri.row.featured()
		}
	}
	if m.detail != nil && m.detail.id() == m.modalRef.ID {
		return m.detail.featured()
	}
	return false
}

// nextStatusFilter cycles through the statuses that make sense for a
// resource, ending back at "" (no filter).
func nextStatusFilter(res model.Resource, cur string) string {
	var cycle []string
	switch res {
	case model.ResourceProperties:
		cycle = []string{"", "pending", "active", "inactive", "rejected", "archived", "sold", "rented"}
	case model.ResourceSubscriptions:
		cycle = []string{"", "active", "pending", "inactive", "cancelled", "expired"}
	default:
		cycle = []string{"", "pending", "active", "suspended", "banned"}
	}
	for i, s := range cycle {
		if s == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return ""
}

func nextSubtypeFilter(cur string) string {
	cycle := []string{"", "rent", "sale", "shortlet"}
	for i, s := range cycle {
		if s == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return ""
}
