package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pollbox/internal/domain/poll"
)

type PostgresVoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &PostgresVoteRepository{db: db}
}

func (r *PostgresVoteRepository) Create(ctx context.Context, v *poll.Vote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PostgresVoteRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]poll.Vote, error) {
	var votes []poll.Vote
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *PostgresVoteRepository) HasVote(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	var v poll.Vote
	err := r.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
