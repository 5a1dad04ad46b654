package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"pollbox/internal/domain/poll"
	pollbox_errors "pollbox/pkg/errors"
)

type PostgresPollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &PostgresPollRepository{db: db}
}

func (r *PostgresPollRepository) Create(ctx context.Context, p *poll.Poll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresPollRepository) GetByID(ctx context.Context, id uuid.UUID) (poll.Poll, error) {
	var p poll.Poll
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll.Poll{}, pollbox_errors.ErrNotFound
		}
		return poll.Poll{}, err
	}
	return p, nil
}

func (r *PostgresPollRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]poll.Poll, error) {
	var polls []poll.Poll
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *PostgresPollRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, question string, options []string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&poll.Poll{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"question": question,
			"options":  pq.StringArray(options),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PostgresPollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&poll.Vote{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&poll.Poll{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pollbox_errors.ErrNotFound
		}
		return nil
	})
}
