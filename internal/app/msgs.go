package app

import (
	"github.com/google/uuid"

	"github.com/Makepad-fr/pizza/internal/model"
)

// CredentialField names a field of the login form.
type CredentialField int

const (
	FieldServer CredentialField = iota
	FieldUsername
	FieldPassword
)

// DraftField names a field of the add-order row.
type DraftField int

const (
	FieldDate DraftField = iota
	FieldPrice
	FieldParticipants
)

// User actions. Key bindings are translated into these, and tests send them
// directly.
type (
	SubmitLogin    struct{}
	SubmitOrder    struct{}
	DeleteOrder    struct{ ID string }
	Logout         struct{}
	DismissError   struct{ Index int }
	EditCredential struct {
		Field CredentialField
		Value string
	}
	EditDraft struct {
		Field DraftField
		Value string
	}
)

// Results of calls to the order store. Each carries the session that issued
// it so answers arriving after a logout are dropped.
type (
	ordersListed struct {
		session uuid.UUID
		orders  []model.Order
		err     error
	}
	orderCreated struct {
		session uuid.UUID
		order   model.Order
		err     error
	}
	orderDeleted struct {
		session uuid.UUID
		id      string
		err     error
	}
)
