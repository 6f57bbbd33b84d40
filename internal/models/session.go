package models

import (
	"time"
)

// Session binds a browser cookie to the bearer token the backend issued at
// login, plus the display identity decoded from the token payload. The raw
// token never reaches the browser.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	Nombre    string    `gorm:"size:150" json:"nombre"`
	Rol       string    `gorm:"size:20" json:"rol"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) IsAdmin() bool {
	return s.Rol == "ADMIN"
}
