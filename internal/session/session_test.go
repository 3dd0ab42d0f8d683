package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pizza/internal/model"
)

type memKV struct {
	data   map[string]string
	getErr error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func newBridge(kv KV) *Bridge {
	return New(kv, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveAndSeed(t *testing.T) {
	kv := newMemKV()
	b := newBridge(kv)

	cred := model.Credential{Server: "https://kinto.example.com/v1", Username: "alice", Password: "pw"}
	draft := model.Draft{Date: "2024-05-01", Price: 30, Participants: []model.Participant{{Name: "Bob/2", Half: true}}}
	require.NoError(t, b.SaveCredential(cred))
	require.NoError(t, b.SaveDraft(draft))
	require.NoError(t, b.SaveServer(cred.Server))

	s := b.Seed()
	assert.Equal(t, cred, s.Credential)
	assert.Equal(t, draft, s.Draft)
	assert.Equal(t, cred.Server, s.Server)
}

func TestClearSessionKeepsServer(t *testing.T) {
	kv := newMemKV()
	b := newBridge(kv)
	require.NoError(t, b.SaveCredential(model.Credential{Server: "srv", Username: "u", Password: "p"}))
	require.NoError(t, b.SaveDraft(model.Draft{Date: "2024-05-01"}))
	require.NoError(t, b.SaveServer("srv"))

	require.NoError(t, b.ClearSession())

	s := b.Seed()
	assert.Equal(t, model.Credential{Server: "srv"}, s.Credential, "credential falls back to the saved server")
	assert.True(t, s.Draft.IsZero())
	assert.Equal(t, "srv", s.Server)
}

func TestSeedIgnoresMalformed(t *testing.T) {
	kv := newMemKV()
	kv.data[keyCredential] = `{"server":"half","username":42}`
	kv.data[keyDraft] = `not json`
	b := newBridge(kv)

	s := b.Seed()
	assert.Equal(t, model.Credential{}, s.Credential)
	assert.Equal(t, model.Draft{}, s.Draft)
}

func TestSeedIgnoresReadErrors(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	assert.Equal(t, Seed{}, newBridge(kv).Seed())
}
