package model

import "time"

// KeyHistory is one entry of the custody ledger: a single checkout of a
// room key, flipped to returned exactly once on check-in and never
// deleted. IDs are app-generated UUIDs so concurrent inserts cannot
// collide on a counter.
type KeyHistory struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID     string     `gorm:"column:sala_id;type:uuid;index;not null" json:"sala_id"`
	UserID     string     `gorm:"column:usuario_id;type:uuid;not null" json:"usuario_id"`
	KeyKind    KeyKind    `gorm:"column:tipo_chave;size:20;not null" json:"tipo_chave"`
	HolderName string     `gorm:"column:nome_pessoa;size:120;not null" json:"nome_pessoa"`
	Notes      string     `gorm:"column:observacoes;size:500" json:"observacoes,omitempty"`
	Returned   bool       `gorm:"column:devolvido;not null;default:false" json:"devolvido"`
	ReturnedAt *time.Time `gorm:"column:devolvido_em" json:"devolvido_em,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`

	// Associations
	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (KeyHistory) TableName() string { return "historico_chaves" }
