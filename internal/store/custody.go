package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"keycontrol-backend/internal/model"
)

var (
	// ErrRoomNotFound is returned when a custody operation references a
	// room that does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrKeyNotAvailable is returned when the requested key is already
	// checked out.
	ErrKeyNotAvailable = errors.New("key not available")
	// ErrNoActiveCheckout is returned on check-in when no unreturned
	// record exists for the (room, key kind) pair.
	ErrNoActiveCheckout = errors.New("no active checkout for key")
)

// availabilityColumn maps a key kind to the room column holding its
// derived availability flag. Kinds are a closed enum, so the identifier
// never comes from user input.
func availabilityColumn(kind model.KeyKind) string {
	if kind == model.KeyReserva {
		return "chave_reserva_disponivel"
	}
	return "disponivel"
}

// CheckoutKey moves a room key from available to checked out and
// records the event in the custody ledger. Both writes run inside one
// transaction: the legacy system issued them as independent statements,
// which could leave the ledger and the room flag disagreeing when the
// second statement failed.
func (s *gormStore) CheckoutKey(ctx context.Context, p CheckoutParams) (*model.KeyHistory, error) {
	record := &model.KeyHistory{
		ID:         uuid.NewString(),
		RoomID:     p.RoomID,
		UserID:     p.UserID,
		KeyKind:    p.Kind,
		HolderName: p.HolderName,
		Notes:      p.Notes,
		Returned:   false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.First(&room, "id = ?", p.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room %s: %w", p.RoomID, err)
		}

		if room.StatusFor(p.Kind) != model.KeyAvailable {
			return ErrKeyNotAvailable
		}

		// Guarded update: only flips the flag if it is still available,
		// so two concurrent checkouts cannot both pass the check above.
		col := availabilityColumn(p.Kind)
		res := tx.Model(&model.Room{}).
			Where("id = ? AND "+col+" = ?", p.RoomID, model.KeyAvailable).
			Update(col, model.KeyInUse)
		if res.Error != nil {
			return fmt.Errorf("failed to mark key in use: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrKeyNotAvailable
		}

		// The partial unique index on (sala_id, tipo_chave) for
		// unreturned rows backstops this insert against races.
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrKeyNotAvailable
			}
			return fmt.Errorf("failed to create custody record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ReturnKey flips the active custody record to returned and the room's
// flag back to available, inside one transaction.
func (s *gormStore) ReturnKey(ctx context.Context, roomID string, kind model.KeyKind) (*model.KeyHistory, error) {
	var record model.KeyHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room %s: %w", roomID, err)
		}

		err := tx.First(&record, "sala_id = ? AND tipo_chave = ? AND devolvido = ?", roomID, kind, false).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveCheckout
			}
			return fmt.Errorf("failed to load active custody record: %w", err)
		}

		now := time.Now().UTC()
		res := tx.Model(&model.KeyHistory{}).
			Where("id = ? AND devolvido = ?", record.ID, false).
			Updates(map[string]interface{}{"devolvido": true, "devolvido_em": now})
		if res.Error != nil {
			return fmt.Errorf("failed to close custody record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveCheckout
		}
		record.Returned = true
		record.ReturnedAt = &now

		col := availabilityColumn(kind)
		if err := tx.Model(&model.Room{}).
			Where("id = ?", roomID).
			Update(col, model.KeyAvailable).Error; err != nil {
			return fmt.Errorf("failed to mark key available: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRoomsWithKeys returns every room joined with the holder of its
// currently unreturned principal and reserve keys, ordered by room
// number. Read-only projection.
func (s *gormStore) ListRoomsWithKeys(ctx context.Context) ([]RoomWithHolders, error) {
	var rooms []RoomWithHolders
	err := s.db.WithContext(ctx).
		Table("salas").
		Select("salas.id, salas.numero, salas.disponivel, salas.chave_reserva_disponivel, " +
			"mh.nome_pessoa AS pessoa_chave_principal, bh.nome_pessoa AS pessoa_chave_reserva").
		Joins("LEFT JOIN historico_chaves mh ON salas.id = mh.sala_id AND mh.tipo_chave = ? AND mh.devolvido = ?",
			model.KeyPrincipal, false).
		Joins("LEFT JOIN historico_chaves bh ON salas.id = bh.sala_id AND bh.tipo_chave = ? AND bh.devolvido = ?",
			model.KeyReserva, false).
		Order("salas.numero").
		Scan(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
