package dto

import "time"

// SessionDTO - серверная сессия. Токен API хранится только здесь,
// в cookie уходит лишь подписанный идентификатор сессии.
type SessionDTO struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
