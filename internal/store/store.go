package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"keycontrol-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error

	ListRoomsWithKeys(ctx context.Context) ([]RoomWithHolders, error)
	CheckoutKey(ctx context.Context, p CheckoutParams) (*model.KeyHistory, error)
	ReturnKey(ctx context.Context, roomID string, kind model.KeyKind) (*model.KeyHistory, error)

	ListPeople(ctx context.Context) ([]model.Person, error)

	HealthCheck(ctx context.Context) error
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

func (s *gormStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) ListPeople(ctx context.Context) ([]model.Person, error) {
	var people []model.Person
	if err := s.db.WithContext(ctx).Order("nome").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// HealthCheck verifies connectivity by acquiring a connection and
// pinging it.
func (s *gormStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
