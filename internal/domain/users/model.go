package users

import "time"

// Preferences es el blob notification_preferences (JSONB).
type Preferences struct {
	Push  bool `json:"push"`
	Email bool `json:"email"`
}

// User es una cuenta. Se crea al registrarse; no se borra.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string

	NotificationPreferences Preferences

	CreatedAt time.Time
}
