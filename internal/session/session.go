// Package session saves and restores what must survive a restart: the login
// credential, the server address and the order being typed in.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/pizza/internal/model"
)

const (
	keyCredential = "session"
	keyDraft      = "draft"
	keyServer     = "server"
)

// KV is a durable string key/value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Seed is the state restored at startup.
type Seed struct {
	Credential model.Credential
	Draft      model.Draft
	Server     string
}

type Bridge struct {
	kv     KV
	logger *slog.Logger
}

func New(kv KV, logger *slog.Logger) *Bridge {
	return &Bridge{kv: kv, logger: logger}
}

func (b *Bridge) SaveCredential(c model.Credential) error {
	return b.setJSON(keyCredential, c)
}

func (b *Bridge) SaveDraft(d model.Draft) error {
	return b.setJSON(keyDraft, d)
}

func (b *Bridge) SaveServer(server string) error {
	if err := b.kv.Set(keyServer, server); err != nil {
		return fmt.Errorf("save server: %w", err)
	}
	return nil
}

// ClearSession forgets the credential and the draft. The server address stays.
func (b *Bridge) ClearSession() error {
	if err := b.kv.Remove(keyCredential, keyDraft); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Seed reads back the saved state. Missing or unreadable entries come back
// empty; nothing here is worth bothering the user about.
func (b *Bridge) Seed() Seed {
	var s Seed
	s.Credential = getJSON[model.Credential](b, keyCredential)
	s.Draft = getJSON[model.Draft](b, keyDraft)
	if v, ok, err := b.kv.Get(keyServer); err != nil {
		b.logger.Debug("ignoring saved server", "error", err)
	} else if ok {
		s.Server = v
	}
	if s.Credential.Server == "" {
		s.Credential.Server = s.Server
	}
	return s
}

func (b *Bridge) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal %s: %w", key, err)
	}
	if err := b.kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// getJSON decodes key into a fresh T, or returns the zero T if anything is off.
func getJSON[T any](b *Bridge, key string) T {
	var zero, v T
	raw, ok, err := b.kv.Get(key)
	if err != nil {
		b.logger.Debug("ignoring saved state", "key", key, "error", err)
		return zero
	}
	if !ok {
		return zero
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		b.logger.Debug("ignoring malformed state", "key", key, "error", err)
		return zero
	}
	return v
}
