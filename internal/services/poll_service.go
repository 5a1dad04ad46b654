package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pollbox/internal/domain/poll"
	"pollbox/internal/repository"
	pollbox_errors "pollbox/pkg/errors"
	"pollbox/pkg/logger"
)

// ListingCache caches a user's poll listing. A miss is reported through
// the bool, not an error. Implementations must treat failures as
// non-fatal; the service logs and falls through to the database.
type ListingCache interface {
	GetUserPolls(ctx context.Context, userID uuid.UUID) ([]poll.Poll, bool, error)
	SetUserPolls(ctx context.Context, userID uuid.UUID, polls []poll.Poll) error
	InvalidateUserPolls(ctx context.Context, userID uuid.UUID) error
}

type PollService struct {
	pollRepo repository.PollRepository
	userRepo repository.UserRepository
	policy   *Policy
	cache    ListingCache
	logger   *logger.Logger
}

func NewPollService(pollRepo repository.PollRepository, userRepo repository.UserRepository, policy *Policy, cache ListingCache, l *logger.Logger) *PollService {
	return &PollService{
		pollRepo: pollRepo,
		userRepo: userRepo,
		policy:   policy,
		cache:    cache,
		logger:   l,
	}
}

// PollView is a poll augmented with the caller-relative ownership flag.
// IsOwner only drives UI affordances; authorization decisions go through
// the policy, never this flag.
type PollView struct {
	Poll    poll.Poll
	IsOwner bool
}

func (s *PollService) Create(ctx context.Context, question string, options []string) (poll.Poll, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return poll.Poll{}, pollbox_errors.ErrUnauthorized
	}

	cleanQuestion, cleanOptions, err := ValidatePollInput(question, options)
	if err != nil {
		return poll.Poll{}, err
	}

	p := poll.Poll{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  cleanQuestion,
		Options:   cleanOptions,
		CreatedAt: time.Now(),
	}

	if err := s.pollRepo.Create(ctx, &p); err != nil {
		return poll.Poll{}, err
	}

	s.invalidateListing(ctx, userID)
	return p, nil
}

// ListOwn returns the caller's polls, newest first, via the listing cache.
func (s *PollService) ListOwn(ctx context.Context) ([]poll.Poll, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, pollbox_errors.ErrUnauthorized
	}

	if cached, hit, err := s.cache.GetUserPolls(ctx, userID); err != nil {
		s.logger.Warnf("poll listing cache read failed: %v", err)
	} else if hit {
		return cached, nil
	}

	polls, err := s.pollRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetUserPolls(ctx, userID, polls); err != nil {
		s.logger.Warnf("poll listing cache write failed: %v", err)
	}
	return polls, nil
}

// Get is a public read; IsOwner is false for anonymous callers.
func (s *PollService) Get(ctx context.Context, id string) (PollView, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return PollView{}, pollbox_errors.ErrInvalidInput
	}

	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return PollView{}, err
	}

	view := PollView{Poll: p}
	if userID, ok := UserIDFromContext(ctx); ok {
		view.IsOwner = s.policy.IsOwner(userID, p.UserID)
	}
	return view, nil
}

// Update re-validates and writes through a compound id+owner filter. A
// non-owner matches zero rows; that is not an error, so success here
// does not mean the update happened.
func (s *PollService) Update(ctx context.Context, id, question string, options []string) error {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return pollbox_errors.ErrUnauthorized
	}

	pollID, err := uuid.Parse(id)
	if err != nil {
		return pollbox_errors.ErrInvalidInput
	}

	cleanQuestion, cleanOptions, err := ValidatePollInput(question, options)
	if err != nil {
		return err
	}

	rows, err := s.pollRepo.UpdateOwned(ctx, pollID, userID, cleanQuestion, cleanOptions)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Infof("poll update matched no rows: poll=%s user=%s", pollID, userID)
	}
	return nil
}

func (s *PollService) Delete(ctx context.Context, id string) error {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return pollbox_errors.ErrUnauthorized
	}

	pollID, err := uuid.Parse(id)
	if err != nil {
		return pollbox_errors.ErrInvalidInput
	}

	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}

	caller, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.policy.Can(caller, ActionDeletePoll, p.UserID) {
		return pollbox_errors.ErrForbidden
	}

	if err := s.pollRepo.Delete(ctx, pollID); err != nil {
		return err
	}

	s.invalidateListing(ctx, p.UserID)
	if p.UserID != userID {
		s.invalidateListing(ctx, userID)
	}
	return nil
}

func (s *PollService) invalidateListing(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.InvalidateUserPolls(ctx, userID); err != nil {
		s.logger.Warnf("poll listing cache invalidation failed: %v", err)
	}
}
