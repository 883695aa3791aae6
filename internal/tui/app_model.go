package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/api"
	"rentdesk/internal/lifecycle"
	"rentdesk/internal/model"
	"rentdesk/internal/mutate"
)

type pane int

const (
	paneNav pane = iota
	paneList
	paneDetail
)

type modalKind int

const (
	modalNone modalKind = iota
	modalActions
	modalInput
	modalSearch
)

// feedbackVisibleFor is how long a minibuffer notice stays on screen before
// it clears itself.
const feedbackVisibleFor = 4 * time.Second

type appModel struct {
	deps Deps

	width  int
	height int

	pane     pane
	leaves   []model.NavLeaf
	navIndex int

	rows        list.Model
	filters     map[model.Resource]api.ListFilter
	meta        model.PaginationMeta
	listSeq     int
	loadingList bool
	listErr     string

	detail        *entityRow
	detailSeq     int
	loadingDetail bool

	modal         modalKind
	actionChoices []lifecycle.Action
	actionIndex   int
	input         textinput.Model
	area          textarea.Model
	spin          spinner.Model
	modalAction   lifecycle.Action
	modalRef      mutate.EntityRef
	modalErr      string
	applying      bool

	debugLogPath string

	// inFlight mirrors the coordinator's pending set for row markers. Keyed
	// "<resource>/<id>".
	inFlight map[string]lifecycle.Action

	feedbackText  string
	feedbackIsErr bool
	feedbackSetAt time.Time
	feedbackSeq   int
}

func newAppModel(d Deps) appModel {
	leaves := model.NavLeaves(model.DefaultNav())

	filters := map[model.Resource]api.ListFilter{}
	for _, leaf := range leaves {
		filters[leaf.Resource] = api.NewListFilter(d.PageSize)
	}

	ti := textinput.New()
	ti.CharLimit = 200

	ta := textarea.New()
	ta.CharLimit = 500
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = stylePending()

	return appModel{
		deps:         d,
		pane:         paneNav,
		leaves:       leaves,
		rows:         newRowList(),
		filters:      filters,
		input:        ti,
		area:         ta,
		spin:         sp,
		inFlight:     map[string]lifecycle.Action{},
		debugLogPath: strings.TrimSpace(os.Getenv("RENTDESK_TUI_DEBUG_LOG")),
	}
}

type initMsg struct{}

func (m appModel) Init() tea.Cmd {
	// Land on the first collection right away instead of an empty pane.
	return tea.Batch(
		func() tea.Msg { return initMsg{} },
		m.spin.Tick,
	)
}

func (m appModel) currentResource() model.Resource {
	return m.leaves[m.navIndex].Resource
}

func (m appModel) currentFilter() api.ListFilter {
	return m.filters[m.currentResource()]
}

func (m *appModel) setFilter(f api.ListFilter) {
	m.filters[m.currentResource()] = f
}

func (m appModel) selectedRow() (entityRow, bool) {
	it, ok := m.rows.SelectedItem().(rowItem)
	if !ok {
		return entityRow{}, false
	}
	return it.row, true
}

func refKey(ref mutate.EntityRef) string {
	return string(ref.Resource) + "/" + ref.ID
}

// refreshPending re-stamps the in-flight marker on every visible row.
func (m *appModel) refreshPending() {
	items := m.rows.Items()
	out := make([]list.Item, len(items))
	for i, it := range items {
		ri, ok := it.(rowItem)
		if !ok {
			out[i] = it
			continue
		}
		_, pending := m.inFlight[string(ri.row.resource)+"/"+ri.row.id()]
		ri.pending = pending
		out[i] = ri
	}
	m.rows.SetItems(out)
}

// showFeedback posts a minibuffer notice and schedules its expiry. Any
// previous notice's timer is invalidated by the seq bump.
func (m *appModel) showFeedback(text string, isErr bool) tea.Cmd {
	m.feedbackText = text
	m.feedbackIsErr = isErr
	m.feedbackSetAt = time.Now()
	m.feedbackSeq++
	seq := m.feedbackSeq
	return tea.Tick(feedbackVisibleFor, func(time.Time) tea.Msg {
		return feedbackClearMsg{seq: seq}
	})
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalErr = ""
	m.applying = false
	m.input.Blur()
	m.input.SetValue("")
	m.area.Blur()
	m.area.SetValue("")
}

// openActions builds the action picker for the given row from the
// transition table. Rows with nothing legal get a notice instead.
func (m *appModel) openActions(row entityRow) tea.Cmd {
	if _, busy := m.inFlight[string(row.resource)+"/"+row.id()]; busy {
		return m.showFeedback("another change is still applying to "+row.id(), true)
	}
	choices := lifecycle.LegalActions(row.resource, row.status(), row.subtype())
	if row.resource == model.ResourceProperties {
		choices = append(choices, lifecycle.ActionSetFeatured)
	}
	if len(choices) == 0 {
		return m.showFeedback("no actions available for status "+string(row.status()), true)
	}
	m.modal = modalActions
	m.actionChoices = choices
	m.actionIndex = 0
	m.modalRef = mutate.EntityRef{
		Resource: row.resource,
		ID:       row.id(),
		Status:   row.status(),
		Subtype:  row.subtype(),
	}
	m.modalErr = ""
	return nil
}
