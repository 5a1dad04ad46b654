package repository

import (
	"context"

	"github.com/google/uuid"

	"pollbox/internal/domain/poll"
	"pollbox/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) error

	CreateSession(ctx context.Context, s *user.UserSession) error
	GetSessionByID(ctx context.Context, sessionID uuid.UUID) (user.UserSession, error)
	UpdateSession(ctx context.Context, s user.UserSession) error
	RevokeSession(ctx context.Context, sessionID uuid.UUID) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
}

type PollRepository interface {
	Create(ctx context.Context, p *poll.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (poll.Poll, error)
	// ListByOwner returns the owner's polls, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]poll.Poll, error)
	// UpdateOwned applies question/options to the row matching both the
	// poll id and the owner id. A non-owner caller matches zero rows,
	// which is reported through the returned count, not as an error.
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, question string, options []string) (int64, error)
	// Delete removes the poll and its votes.
	Delete(ctx context.Context, id uuid.UUID) error
}

type VoteRepository interface {
	Create(ctx context.Context, v *poll.Vote) error
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]poll.Vote, error)
	// HasVote reports whether the user already voted on the poll.
	HasVote(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
}
