package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleAlmacenero = "almacenero"
	RoleCorte      = "corte"
)

// User representa un usuario del sistema.
type User struct {
	ID            int64     `db:"id"`
	Username      string    `db:"username"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"` // bcrypt, nunca plano tras persistir
	Nombre        string    `db:"nombre"`
	Role          string    `db:"role"`
	Estado        string    `db:"estado"` // active, inactive
	FechaCreacion time.Time `db:"fecha_creacion"`
}
