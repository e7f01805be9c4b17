package model

import "time"

// KeyStatus is the derived availability flag for one of a room's keys.
// The literal values are kept from the legacy schema so existing rows
// and clients keep working.
type KeyStatus string

const (
	KeyAvailable KeyStatus = "Disponível"
	KeyInUse     KeyStatus = "Em uso"
)

// KeyKind identifies which physical key of a room a record concerns.
type KeyKind string

const (
	KeyPrincipal KeyKind = "principal"
	KeyReserva   KeyKind = "reserva"
)

// Valid reports whether the kind is one of the two known keys.
func (k KeyKind) Valid() bool {
	return k == KeyPrincipal || k == KeyReserva
}

// Room represents a physical room and the availability of its two keys.
// The availability columns are denormalized: each must equal "Em uso"
// exactly when an unreturned KeyHistory row exists for that key kind.
// Only the custody operations in the store mutate them.
type Room struct {
	ID                     string    `gorm:"type:uuid;primaryKey" json:"id"`
	Numero                 int       `gorm:"uniqueIndex;not null" json:"numero"`
	Disponivel             KeyStatus `gorm:"size:20;not null;default:'Disponível'" json:"disponivel"`
	ChaveReservaDisponivel KeyStatus `gorm:"column:chave_reserva_disponivel;size:20;not null;default:'Disponível'" json:"chave_reserva_disponivel"`
	CreatedAt              time.Time `json:"-"`
	UpdatedAt              time.Time `json:"-"`
}

func (Room) TableName() string { return "salas" }

// StatusFor returns the availability flag for the given key kind.
func (r *Room) StatusFor(kind KeyKind) KeyStatus {
	if kind == KeyReserva {
		return r.ChaveReservaDisponivel
	}
	return r.Disponivel
}
