// Package app is the interactive order book: a Bubble Tea model that owns the
// login form, the loaded orders, the draft being typed in and the error log.
package app

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Makepad-fr/pizza/internal/model"
	"github.com/Makepad-fr/pizza/internal/session"
	"github.com/Makepad-fr/pizza/internal/split"
)

// OrderStore is the remote order collection.
type OrderStore interface {
	List(ctx context.Context, cred model.Credential) ([]model.Order, error)
	Create(ctx context.Context, cred model.Credential, draft model.Draft) (model.Order, error)
	Delete(ctx context.Context, cred model.Credential, id string) (model.Tombstone, error)
	ExportURL(cred model.Credential) (string, error)
}

// Persistence keeps the session and draft across restarts.
type Persistence interface {
	SaveCredential(c model.Credential) error
	SaveDraft(d model.Draft) error
	SaveServer(server string) error
	ClearSession() error
}

type Deps struct {
	Store   OrderStore
	Persist Persistence
	Logger  *slog.Logger
	Timeout time.Duration
}

// zone is a focusable part of the screen.
type zone int

const (
	zoneServer zone = iota
	zoneUsername
	zonePassword
	zoneDate
	zonePrice
	zoneParticipants
	zoneOrders
	zoneErrors
)

// inputs indexed by zone, for the single-line fields
const numInputs = int(zonePrice) + 1

type Model struct {
	store   OrderStore
	persist Persistence
	logger  *slog.Logger
	timeout time.Duration

	session  uuid.UUID
	cred     model.Credential
	orders   Remote[[]model.Order]
	draft    model.Draft
	creating bool
	deleting map[string]bool
	errors   []string

	inputs       [numInputs]textinput.Model
	participants textarea.Model
	focus        zone
	cursor       int // selected order
	errCursor    int // selected error
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	width        int
}

// New builds the model from its collaborators and whatever was saved last time.
func New(deps Deps, seed session.Seed) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 10 * time.Second
	}
	m := Model{
		store:   deps.Store,
		persist: deps.Persist,
		logger:  deps.Logger,
		timeout: deps.Timeout,
		session: uuid.New(),
		cred:    seed.Credential,
		draft:   seed.Draft,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		help:    help.New(),
		keys:    newKeyMap(),
		width:   80,
	}
	if m.cred.Server == "" {
		m.cred.Server = seed.Server
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	m.inputs[zoneServer].Placeholder = "https://kinto.example.com/v1"
	m.inputs[zoneUsername].Placeholder = "username"
	m.inputs[zonePassword].Placeholder = "password"
	m.inputs[zonePassword].EchoMode = textinput.EchoPassword
	m.inputs[zonePassword].EchoCharacter = '•'
	m.inputs[zoneDate].Placeholder = "YYYY-MM-DD"
	m.inputs[zoneDate].CharLimit = 10
	m.inputs[zonePrice].Placeholder = "0.00"
	m.inputs[zonePrice].CharLimit = 12

	ta := textarea.New()
	ta.Placeholder = "one name per line, Bob/2 for a half"
	ta.ShowLineNumbers = false
	ta.Prompt = "│ "
	ta.SetWidth(40)
	ta.SetHeight(4)
	ta.Cursor.SetMode(cursor.CursorStatic)
	m.participants = ta

	m.syncCredentialInputs()
	m.syncDraftInputs()
	m.setFocus(zoneServer)
	return m
}

// Init logs in straight away when a full credential was saved.
func (m Model) Init() tea.Cmd {
	if m.cred.Complete() {
		return func() tea.Msg { return SubmitLogin{} }
	}
	return nil
}

// Orders returns the loaded orders, if any.
func (m Model) Orders() ([]model.Order, bool) { return m.orders.Value() }

func (m Model) OrdersStatus() Status { return m.orders.Status() }

func (m Model) Errors() []string { return m.errors }

func (m Model) Draft() model.Draft { return m.draft }

func (m Model) Credential() model.Credential { return m.cred }

func (m Model) Creating() bool { return m.creating }

// Deleting reports whether a delete of id is in flight.
func (m Model) Deleting(id string) bool { return m.deleting[id] }

func (m *Model) syncCredentialInputs() {
	m.inputs[zoneServer].SetValue(m.cred.Server)
	m.inputs[zoneUsername].SetValue(m.cred.Username)
	m.inputs[zonePassword].SetValue(m.cred.Password)
}

func (m *Model) syncDraftInputs() {
	m.inputs[zoneDate].SetValue(m.draft.Date)
	m.inputs[zonePrice].SetValue(formatPrice(m.draft.Price))
	m.participants.SetValue(split.Format(m.draft.Participants))
}

func formatPrice(p float64) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// zones lists what can take focus on the current screen, in tab order.
func (m Model) zones() []zone {
	var zs []zone
	if m.loggedIn() {
		zs = []zone{zoneDate, zonePrice, zoneParticipants, zoneOrders}
	} else {
		zs = []zone{zoneServer, zoneUsername, zonePassword}
	}
	if len(m.errors) > 0 {
		zs = append(zs, zoneErrors)
	}
	return zs
}

func (m Model) loggedIn() bool { return m.orders.Status() == Loaded }

func (m *Model) setFocus(z zone) {
	m.focus = z
	for i := range m.inputs {
		if zone(i) == z {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if z == zoneParticipants {
		m.participants.Focus()
	} else {
		m.participants.Blur()
	}
}

// cycleFocus moves by delta through the current zones, wrapping around.
func (m *Model) cycleFocus(delta int) {
	zs := m.zones()
	at := 0
	for i, z := range zs {
		if z == m.focus {
			at = i
			break
		}
	}
	at = (at + delta + len(zs)) % len(zs)
	m.setFocus(zs[at])
}

// fixFocus puts focus back on the screen after the screen changed under it.
func (m *Model) fixFocus() {
	zs := m.zones()
	for _, z := range zs {
		if z == m.focus {
			m.setFocus(z)
			return
		}
	}
	m.setFocus(zs[0])
}
