package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Makepad-fr/pizza/internal/model"
	"github.com/Makepad-fr/pizza/internal/split"
	"github.com/Makepad-fr/pizza/internal/ui"
)

func (m Model) View() string {
	parts := []string{m.header()}
	if errs := m.errorsView(); errs != "" {
		parts = append(parts, errs)
	}
	if m.loggedIn() {
		parts = append(parts, m.ordersView())
	} else {
		parts = append(parts, m.loginView())
	}
	parts = append(parts, m.help.View(m.keys.forZone(m.focus, m.loggedIn())))
	return panelString(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) header() string {
	title := titleStyle.Render("Pizza orders")
	if !m.loggedIn() {
		return title
	}
	orders, _ := m.orders.Value()
	return fmt.Sprintf("%s   %s %s   %s %d",
		title,
		mutedStyle.Render("as"), accentStyle.Render(m.cred.Username),
		mutedStyle.Render("orders"), len(orders),
	)
}

func (m Model) field(z zone, label, input string) string {
	style := fieldStyle
	if m.focus == z {
		style = focusedFieldStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), style.Render(input))
}

func (m Model) loginView() string {
	loading := m.orders.Status() == Loading
	submit := button("Log in", m.cred.Complete() && !loading)
	if loading {
		submit += " " + m.spinner.View() + mutedStyle.Render(" loading orders…")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.field(zoneServer, "Server", m.inputs[zoneServer].View()),
		m.field(zoneUsername, "Username", m.inputs[zoneUsername].View()),
		m.field(zonePassword, "Password", m.inputs[zonePassword].View()),
		"",
		submit,
		"",
	)
}

func (m Model) ordersView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.addOrderView(),
		"",
		m.tableView(),
		"",
		m.exportView(),
	)
}

func (m Model) addOrderView() string {
	add := button("Add order", !m.creating)
	if m.creating {
		add += " " + m.spinner.View() + mutedStyle.Render(" saving…")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("New order"),
		m.field(zoneDate, "Date", m.inputs[zoneDate].View()),
		m.field(zonePrice, "Price", m.inputs[zonePrice].View()),
		m.field(zoneParticipants, "Participants", m.participants.View()),
		m.draftPreview(),
		add,
	)
}

// draftPreview shows what a half portion will cost with the draft as typed.
func (m Model) draftPreview() string {
	unit, err := split.UnitPrice(m.draft.Price, m.draft.Participants)
	switch {
	case errors.Is(err, split.ErrNoParticipants):
		return mutedStyle.Render("no participants yet")
	case err != nil:
		return errorStyle.Render("price out of range")
	}
	return mutedStyle.Render(fmt.Sprintf("%d people, %s per half portion",
		len(m.draft.Participants), ui.Money(unit)))
}

func (m Model) tableView() string {
	orders, _ := m.orders.Value()
	if len(orders) == 0 {
		return mutedStyle.Render("no orders yet")
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{o.Date, priceCell(o), participantsCell(o), m.removeCell(o)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Date", "Price", "Participants", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row == m.cursor && m.focus == zoneOrders:
				return selectedCellStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func priceCell(o model.Order) string {
	cell := ui.Money(o.Price)
	if r, err := split.Residue(o.Price, o.Participants); err == nil && r != 0 {
		cell += "\n" + mutedStyle.Render(fmt.Sprintf("(%+.2f)", r))
	}
	return cell
}

func participantsCell(o model.Order) string {
	shares, err := split.Shares(o.Price, o.Participants)
	switch {
	case errors.Is(err, split.ErrNoParticipants):
		return mutedStyle.Render("nobody")
	case err != nil:
		return errorStyle.Render("price out of range")
	}
	lines := make([]string, len(o.Participants))
	for i, p := range o.Participants {
		box := mutedStyle.Render(ui.Box(false))
		if p.Paid {
			box = successStyle.Render(ui.Box(true))
		}
		lines[i] = fmt.Sprintf("%s %s %s", box, p.Name, pendingStyle.Render(ui.Money(shares[i])))
	}
	return strings.Join(lines, "\n")
}

func (m Model) removeCell(o model.Order) string {
	if m.deleting[o.ID] {
		return m.spinner.View() + " removing"
	}
	return mutedStyle.Render("remove")
}

func (m Model) exportView() string {
	u, err := m.store.ExportURL(m.cred)
	if err != nil {
		return mutedStyle.Render("export unavailable: " + err.Error())
	}
	return accentStyle.Render("Export") + " " + mutedStyle.Render(u)
}

func (m Model) errorsView() string {
	if len(m.errors) == 0 {
		return ""
	}
	lines := make([]string, len(m.errors))
	for i, e := range m.errors {
		line := errorStyle.Render("✖ ") + e
		if m.focus == zoneErrors && i == m.errCursor {
			line = selectedStyle.Render("✖ " + e)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
