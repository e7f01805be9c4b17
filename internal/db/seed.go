package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"keycontrol-backend/internal/model"
)

// Seed inserts the default admin account, sample rooms and sample people
// when the users table is empty. It is a no-op on an already populated
// database.
func Seed(db *gorm.DB) error {
	var users int64
	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	admin := model.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: string(hash),
		NivelAcesso:  model.AccessAdmin,
	}

	rooms := make([]model.Room, 0, 5)
	for numero := 101; numero <= 105; numero++ {
		rooms = append(rooms, model.Room{
			ID:                     uuid.NewString(),
			Numero:                 numero,
			Disponivel:             model.KeyAvailable,
			ChaveReservaDisponivel: model.KeyAvailable,
		})
	}

	people := []model.Person{
		{ID: uuid.NewString(), Nome: "Ana Souza"},
		{ID: uuid.NewString(), Nome: "Bruno Lima"},
		{ID: uuid.NewString(), Nome: "Carla Mendes"},
		{ID: uuid.NewString(), Nome: "Diego Alves"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		if err := tx.Create(&people).Error; err != nil {
			return fmt.Errorf("failed to seed people: %w", err)
		}
		log.Println("Seeded default admin user (admin), 5 rooms and 4 people")
		return nil
	})
}
