package store

import "keycontrol-backend/internal/model"

// RoomWithHolders is the rooms-listing projection: one room joined with
// the names currently holding each of its keys. A nil holder means that
// key has no unreturned checkout.
type RoomWithHolders struct {
	ID                     string          `json:"id"`
	Numero                 int             `json:"numero"`
	Disponivel             model.KeyStatus `json:"disponivel"`
	ChaveReservaDisponivel model.KeyStatus `gorm:"column:chave_reserva_disponivel" json:"chave_reserva_disponivel"`
	PessoaChavePrincipal   *string         `gorm:"column:pessoa_chave_principal" json:"pessoa_chave_principal"`
	PessoaChaveReserva     *string         `gorm:"column:pessoa_chave_reserva" json:"pessoa_chave_reserva"`
}

// CheckoutParams carries everything a key checkout needs.
type CheckoutParams struct {
	RoomID     string
	UserID     string
	Kind       model.KeyKind
	HolderName string
	Notes      string
}
