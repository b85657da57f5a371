package domain

import (
	"encoding/json"
	"time"
)

// User es el registro mínimo que el servicio mock persiste por email.
type User struct {
	ID            string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	EmailVerified bool       `json:"email_verified"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// UnmarshalJSON aplica defaults: un snapshot sin los booleanos los trata como true.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := alias{EmailVerified: true, IsActive: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux)
	return nil
}

// Collection es el documento completo que se escribe al snapshot durable.
type Collection struct {
	Users []User `json:"users"`
}
