package model

import "time"

// AccessLevel is the closed set of roles a user can hold.
type AccessLevel string

const (
	AccessEmployee AccessLevel = "funcionario"
	AccessAdmin    AccessLevel = "administrador"
)

// Valid reports whether the level is one of the known roles.
func (a AccessLevel) Valid() bool {
	return a == AccessEmployee || a == AccessAdmin
}

// User represents an operator account. The password hash is never
// serialized to clients.
type User struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string      `gorm:"uniqueIndex;size:30;not null" json:"username"`
	PasswordHash string      `gorm:"column:senha;size:255;not null" json:"-"`
	NivelAcesso  AccessLevel `gorm:"column:nivel_acesso;size:20;not null;default:'funcionario'" json:"nivel_acesso"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

func (User) TableName() string { return "usuarios" }
