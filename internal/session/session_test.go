package session

import (
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siviack-portal/internal/database"
	"siviack-portal/internal/models"
)

// fakeToken builds a JWT-shaped token whose payload the portal can decode.
// The signature is garbage: the portal never verifies it.
func fakeToken(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	header := enc([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + enc([]byte(payload)) + ".firma"
}

func TestDecodeToken(t *testing.T) {
	claims, err := DecodeToken(fakeToken(`{"sub":"Carla Núñez","rol":"ADMIN","exp":9999999999}`))
	require.NoError(t, err)
	assert.Equal(t, "Carla Núñez", claims.Sub)
	assert.Equal(t, RolAdmin, claims.Rol)
}

func TestDecodeTokenWithoutSubject(t *testing.T) {
	_, err := DecodeToken(fakeToken(`{"rol":"ADMIN"}`))
	assert.Error(t, err)
}

func TestDecodeTokenCorrupted(t *testing.T) {
	_, err := DecodeToken("no-es-un-jwt")
	assert.Error(t, err)
}

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	_, err := database.Connect(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.Session{}))
	return NewManager(database.DB, ttl)
}

func TestManagerLifecycle(t *testing.T) {
	mgr := newTestManager(t, time.Hour)

	sess, err := mgr.Start(fakeToken(`{"sub":"consultor1","rol":"CONSULTOR"}`))
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "consultor1", sess.Nombre)
	assert.Equal(t, RolConsultor, sess.Rol)

	got, err := mgr.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)

	mgr.Destroy(sess.ID)
	_, err = mgr.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerRejectsUndecodableToken(t *testing.T) {
	mgr := newTestManager(t, time.Hour)
	_, err := mgr.Start("basura")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestManagerPersistFailureIsNotBadToken(t *testing.T) {
	mgr := newTestManager(t, time.Hour)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = mgr.Start(fakeToken(`{"sub":"carla","rol":"ADMIN"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadToken)
}

func TestManagerExpiry(t *testing.T) {
	mgr := newTestManager(t, -time.Minute)

	sess, err := mgr.Start(fakeToken(`{"sub":"carla","rol":"ADMIN"}`))
	require.NoError(t, err)

	_, err = mgr.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerGetEmptyID(t *testing.T) {
	mgr := newTestManager(t, time.Hour)
	_, err := mgr.Get("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor(RolAdmin)
	assert.True(t, admin.CanCreate)
	assert.True(t, admin.CanEdit)
	assert.True(t, admin.CanAdmin)
	assert.True(t, admin.CanExport)

	consultor := CapabilitiesFor(RolConsultor)
	assert.True(t, consultor.CanCreate)
	assert.True(t, consultor.CanEdit)
	assert.False(t, consultor.CanAdmin)

	cliente := CapabilitiesFor(RolCliente)
	assert.False(t, cliente.CanCreate)
	assert.False(t, cliente.CanEdit)
	assert.False(t, cliente.CanAdmin)
	assert.True(t, cliente.CanExport)
	assert.True(t, cliente.CanViewDetails)
}
