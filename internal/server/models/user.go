// Package models defines server-side data models persisted in the database.
package models

// User is a registered account. PasswordHash and Salt never leave the
// server: they are excluded from JSON.
type User struct {
	ID           int64  `json:"user_id"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	CURP         string `json:"curp"`
	RFC          string `json:"rfc"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
	RoleID       int64  `json:"fk_rol"`
}
