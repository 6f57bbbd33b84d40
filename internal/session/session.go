package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"siviack-portal/internal/models"
)

var (
	ErrNotFound = errors.New("session: not found or expired")

	// ErrBadToken marks a login token whose payload could not be decoded;
	// callers treat it as a failed login, unlike persistence errors.
	ErrBadToken = errors.New("session: unusable token payload")
)

// Claims is the slice of the backend token payload the portal cares about.
// The backend signs the token; the portal only reads the payload, so the
// parse is deliberately unverified.
type Claims struct {
	Sub string `json:"sub"`
	Rol string `json:"rol"`
}

// DecodeToken extracts the subject name and role from a bearer token. A
// token whose payload cannot be decoded is treated as corrupted.
func DecodeToken(token string) (Claims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("session: corrupted token: %w", err)
	}

	out := Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Sub = sub
	}
	if rol, ok := claims["rol"].(string); ok {
		out.Rol = rol
	}
	if out.Sub == "" {
		return Claims{}, errors.New("session: token payload has no subject")
	}
	return out, nil
}

// Manager persists portal sessions in the local sqlite store.
type Manager struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewManager(db *gorm.DB, ttl time.Duration) *Manager {
	return &Manager{db: db, ttl: ttl}
}

// Start decodes the token payload and persists a new session. Decode
// failure means the login response was unusable and no session is created.
func (m *Manager) Start(token string) (*models.Session, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Nombre:    claims.Sub,
		Rol:       claims.Rol,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.db.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("session: persist: %w", err)
	}
	return sess, nil
}

func (m *Manager) Get(id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var sess models.Session
	if err := m.db.First(&sess, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}
	if sess.Expired() {
		m.db.Delete(&models.Session{}, "id = ?", id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Destroy is the single logout path: on user action, on a backend 401 and
// on corrupted-token detection.
func (m *Manager) Destroy(id string) {
	if id == "" {
		return
	}
	m.db.Delete(&models.Session{}, "id = ?", id)
}

// Sweep drops expired rows. Called from the cron refresher.
func (m *Manager) Sweep() {
	m.db.Delete(&models.Session{}, "expires_at < ?", time.Now())
}
