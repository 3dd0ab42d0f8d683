package app

import (
	"context"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Makepad-fr/pizza/internal/model"
	"github.com/Makepad-fr/pizza/internal/split"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil // let the tick loop die
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SubmitLogin:
		return m.submitLogin()
	case SubmitOrder:
		return m.submitOrder()
	case DeleteOrder:
		return m.deleteOrder(msg.ID)
	case Logout:
		return m.logout(), nil
	case DismissError:
		return m.dismissError(msg.Index), nil
	case EditCredential:
		m.editCredential(msg.Field, msg.Value)
		m.syncCredentialInputs()
		return m, nil
	case EditDraft:
		m.editDraft(msg.Field, msg.Value)
		switch msg.Field {
		case FieldDate:
			m.inputs[zoneDate].SetValue(msg.Value)
		case FieldPrice:
			m.inputs[zonePrice].SetValue(msg.Value)
		case FieldParticipants:
			m.participants.SetValue(msg.Value)
		}
		return m, nil

	case ordersListed:
		return m.ordersListed(msg), nil
	case orderCreated:
		return m.orderCreated(msg), nil
	case orderDeleted:
		return m.orderDeleted(msg), nil
	}
	return m, nil
}

func (m Model) busy() bool {
	return m.orders.Status() == Loading || m.creating || len(m.deleting) > 0
}

func (m Model) stale(session uuid.UUID, what string) bool {
	if session == m.session {
		return false
	}
	m.logger.Debug("dropping result from an earlier session", "result", what)
	return true
}

// ------------------------------------------------------------------
// keys
// ------------------------------------------------------------------

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
		return m, nil
	}

	if m.focus == zoneErrors {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.errCursor = max(m.errCursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.errCursor = max(min(m.errCursor+1, len(m.errors)-1), 0)
		case key.Matches(msg, m.keys.Dismiss):
			return m.dismissError(m.errCursor), nil
		}
		return m, nil
	}

	if !m.loggedIn() {
		if key.Matches(msg, m.keys.Login) {
			return m.submitLogin()
		}
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		return m.submitOrder()
	case key.Matches(msg, m.keys.Logout):
		return m.logout(), nil
	}

	switch m.focus {
	case zoneOrders:
		orders, _ := m.orders.Value()
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = max(min(m.cursor+1, len(orders)-1), 0)
		case key.Matches(msg, m.keys.Remove):
			if m.cursor >= 0 && m.cursor < len(orders) {
				return m.deleteOrder(orders[m.cursor].ID)
			}
		}
		return m, nil
	case zoneDate, zonePrice:
		if msg.Type == tea.KeyEnter {
			return m.submitOrder()
		}
	}
	return m.updateInput(msg)
}

// updateInput feeds a key to the focused field and applies the edit.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case zoneServer, zoneUsername, zonePassword:
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if v := m.inputs[m.focus].Value(); v != before {
			m.editCredential(CredentialField(m.focus-zoneServer), v)
		}
	case zoneDate, zonePrice:
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if v := m.inputs[m.focus].Value(); v != before {
			m.editDraft(DraftField(m.focus-zoneDate), v)
		}
	case zoneParticipants:
		before := m.participants.Value()
		m.participants, cmd = m.participants.Update(msg)
		if v := m.participants.Value(); v != before {
			m.editDraft(FieldParticipants, v)
		}
	}
	return m, cmd
}

// ------------------------------------------------------------------
// transitions
// ------------------------------------------------------------------

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if !m.cred.Complete() || m.orders.Status() == Loading || m.loggedIn() {
		return m, nil
	}
	m.session = uuid.New()
	m.orders = Pending[[]model.Order]()
	if err := m.persist.SaveServer(m.cred.Server); err != nil {
		m.logger.Warn("could not save server address", "error", err)
	}
	m.logger.Info("loading orders", "server", m.cred.Server, "user", m.cred.Username)
	return m, tea.Batch(m.listCmd(), m.spinner.Tick)
}

func (m Model) ordersListed(msg ordersListed) Model {
	if m.stale(msg.session, "list") {
		return m
	}
	if msg.err != nil {
		m.orders = Failure[[]model.Order](msg.err)
		m.pushError("Could not load orders", msg.err)
		m.fixFocus()
		return m
	}
	orders := slices.Clone(msg.orders)
	model.SortByDateDesc(orders)
	m.orders = Success(orders)
	m.cursor = 0
	if err := m.persist.SaveCredential(m.cred); err != nil {
		m.logger.Warn("could not save session", "error", err)
	}
	m.logger.Info("orders loaded", "count", len(orders))
	m.setFocus(zoneDate)
	return m
}

func (m Model) submitOrder() (tea.Model, tea.Cmd) {
	if !m.loggedIn() || m.creating {
		return m, nil
	}
	m.creating = true
	return m, tea.Batch(m.createCmd(m.draft), m.spinner.Tick)
}

func (m Model) orderCreated(msg orderCreated) Model {
	if m.stale(msg.session, "create") {
		return m
	}
	m.creating = false
	if msg.err != nil {
		m.pushError("Could not add order", msg.err)
		return m
	}
	orders, _ := m.orders.Value()
	orders = append(slices.Clone(orders), msg.order)
	model.SortByDateDesc(orders)
	m.orders = Success(orders)

	m.draft = model.Draft{}
	m.saveDraft()
	m.syncDraftInputs()
	m.logger.Info("order added", "id", msg.order.ID, "date", msg.order.Date)
	return m
}

func (m Model) deleteOrder(id string) (tea.Model, tea.Cmd) {
	if !m.loggedIn() || m.deleting[id] {
		return m, nil
	}
	m.deleting = maps.Clone(m.deleting)
	if m.deleting == nil {
		m.deleting = map[string]bool{}
	}
	m.deleting[id] = true
	return m, tea.Batch(m.deleteCmd(id), m.spinner.Tick)
}

func (m Model) orderDeleted(msg orderDeleted) Model {
	if m.stale(msg.session, "delete") {
		return m
	}
	m.deleting = maps.Clone(m.deleting)
	delete(m.deleting, msg.id)
	if msg.err != nil {
		m.pushError("Could not remove order", msg.err)
		return m
	}
	orders, _ := m.orders.Value()
	orders = slices.DeleteFunc(slices.Clone(orders), func(o model.Order) bool { return o.ID == msg.id })
	m.orders = Success(orders)
	m.cursor = max(min(m.cursor, len(orders)-1), 0)
	m.logger.Info("order removed", "id", msg.id)
	return m
}

func (m Model) logout() Model {
	m.session = uuid.New()
	m.orders = Remote[[]model.Order]{}
	m.cred = m.cred.Forget()
	m.draft = model.Draft{}
	m.creating = false
	m.deleting = nil
	m.cursor = 0
	if err := m.persist.ClearSession(); err != nil {
		m.logger.Warn("could not clear session", "error", err)
	}
	m.syncCredentialInputs()
	m.syncDraftInputs()
	m.setFocus(zoneUsername)
	m.logger.Info("logged out")
	return m
}

// dismissError removes the entry at index; positions of the rest shift up.
func (m Model) dismissError(index int) Model {
	if index < 0 || index >= len(m.errors) {
		return m
	}
	m.errors = slices.Delete(slices.Clone(m.errors), index, index+1)
	m.errCursor = max(min(m.errCursor, len(m.errors)-1), 0)
	m.fixFocus()
	return m
}

func (m *Model) pushError(what string, err error) {
	m.logger.Warn(what, "error", err)
	m.errors = append([]string{what + ": " + err.Error()}, m.errors...)
	m.errCursor = 0
}

func (m *Model) editCredential(f CredentialField, v string) {
	switch f {
	case FieldServer:
		m.cred.Server = v
	case FieldUsername:
		m.cred.Username = v
	case FieldPassword:
		m.cred.Password = v
	}
}

func (m *Model) editDraft(f DraftField, v string) {
	switch f {
	case FieldDate:
		m.draft.Date = v
	case FieldPrice:
		m.draft.Price = parsePrice(v)
	case FieldParticipants:
		m.draft.Participants = split.Parse(v)
	}
	m.saveDraft()
}

func (m Model) saveDraft() {
	if err := m.persist.SaveDraft(m.draft); err != nil {
		m.logger.Warn("could not save draft", "error", err)
	}
}

// parsePrice accepts a decimal comma; anything unreadable, negative or
// non-finite counts as zero.
func parsePrice(s string) float64 {
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// ------------------------------------------------------------------
// commands
// ------------------------------------------------------------------

func (m Model) listCmd() tea.Cmd {
	store, cred, sess, timeout := m.store, m.cred, m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		orders, err := store.List(ctx, cred)
		return ordersListed{session: sess, orders: orders, err: err}
	}
}

func (m Model) createCmd(draft model.Draft) tea.Cmd {
	store, cred, sess, timeout := m.store, m.cred, m.session, m.timeout
	draft.Participants = slices.Clone(draft.Participants)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		order, err := store.Create(ctx, cred, draft)
		return orderCreated{session: sess, order: order, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	store, cred, sess, timeout := m.store, m.cred, m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := store.Delete(ctx, cred, id)
		return orderDeleted{session: sess, id: id, err: err}
	}
}
