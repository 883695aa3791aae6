package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/lifecycle"
)

// actionLabel is the human name shown in the picker.
func actionLabel(a lifecycle.Action) string {
	switch a {
	case lifecycle.ActionApprove:
		return "Approve"
	case lifecycle.ActionReject:
		return "Reject…"
	case lifecycle.ActionActivate:
		return "Activate"
	case lifecycle.ActionDeactivate:
		return "Deactivate…"
	case lifecycle.ActionArchive:
		return "Archive…"
	case lifecycle.ActionMarkPending:
		return "Return to moderation"
	case lifecycle.ActionMarkSold:
		return "Mark sold"
	case lifecycle.ActionMarkRented:
		return "Mark rented"
	case lifecycle.ActionSuspend:
		return "Suspend…"
	case lifecycle.ActionBan:
		return "Ban…"
	case lifecycle.ActionCancel:
		return "Cancel subscription…"
	case lifecycle.ActionRenew:
		return "Renew subscription"
	case lifecycle.ActionSetFeatured:
		return "Toggle featured"
	default:
		return string(a)
	}
}

func (m appModel) modalBox(title, body string) string {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	if w > m.width-4 && m.width > 8 {
		w = m.width - 4
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(w)
	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + body
	return box.Render(content)
}

// overlayModal centers the modal over the body area. The background is not
// dimmed; the border carries the focus.
func (m appModel) overlayModal(body string) string {
	var box string
	switch m.modal {
	case modalActions:
		box = m.renderActionsModal()
	case modalInput:
		box = m.renderInputModal()
	case modalSearch:
		box = m.modalBox("Search "+m.leaves[m.navIndex].Title, " "+m.input.View()+"\n\n"+styleMuted().Render("enter: search  esc: cancel"))
	default:
		return body
	}
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) renderActionsModal() string {
	sel := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	var lines []string
	for i, a := range m.actionChoices {
		label := " " + actionLabel(a) + " "
		if i == m.actionIndex {
			label = sel.Render(label)
		}
		lines = append(lines, label)
	}
	lines = append(lines, "", styleMuted().Render("enter: apply  esc: cancel"))
	return m.modalBox("Actions · "+m.modalRef.ID, strings.Join(lines, "\n"))
}

func (m appModel) renderInputModal() string {
	spec, _ := lifecycle.Describe(m.modalAction)

	var lines []string
	lines = append(lines, m.area.View())
	if m.modalErr != "" {
		lines = append(lines, "", styleError().Render(m.modalErr))
	}
	if m.applying {
		lines = append(lines, "", m.spin.View()+stylePending().Render(" applying…"))
	} else if spec.RequiresInput {
		lines = append(lines, "", styleMuted().Render("enter: confirm  esc: cancel"))
	} else {
		lines = append(lines, "", styleMuted().Render("enter: confirm (note optional)  esc: cancel"))
	}

	title := strings.TrimSuffix(actionLabel(m.modalAction), "…") + " · " + m.modalRef.ID
	return m.modalBox(title, strings.Join(lines, "\n"))
}
