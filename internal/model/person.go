package model

import "time"

// Person is reference data: someone keys can be handed to.
type Person struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string    `gorm:"size:120;not null" json:"nome"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Person) TableName() string { return "pessoas" }
