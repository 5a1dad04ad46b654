package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pollbox/internal/domain/poll"
	"pollbox/internal/domain/user"
	pollbox_errors "pollbox/pkg/errors"
	"pollbox/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func ctxWithUser(userID uuid.UUID) context.Context {
	return WithUserSessionContext(context.Background(), userID, uuid.New())
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]user.User
	sessions map[uuid.UUID]user.UserSession
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]user.User),
		sessions: make(map[uuid.UUID]user.UserSession),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return pollbox_errors.ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, pollbox_errors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pollbox_errors.ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return pollbox_errors.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) CreateSession(_ context.Context, s *user.UserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeUserRepo) GetSessionByID(_ context.Context, sessionID uuid.UUID) (user.UserSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return user.UserSession{}, pollbox_errors.ErrNotFound
	}
	return s, nil
}

func (r *fakeUserRepo) UpdateSession(_ context.Context, s user.UserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeUserRepo) RevokeSession(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return pollbox_errors.ErrNotFound
	}
	s.IsRevoked = true
	r.sessions[sessionID] = s
	return nil
}

func (r *fakeUserRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			s.IsRevoked = true
			r.sessions[id] = s
		}
	}
	return nil
}

type fakePollRepo struct {
	mu    sync.Mutex
	polls map[uuid.UUID]poll.Poll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]poll.Poll)}
}

func (r *fakePollRepo) Create(_ context.Context, p *poll.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls[p.ID] = *p
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (poll.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok {
		return poll.Poll{}, pollbox_errors.ErrNotFound
	}
	return p, nil
}

func (r *fakePollRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]poll.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var polls []poll.Poll
	for _, p := range r.polls {
		if p.UserID == ownerID {
			polls = append(polls, p)
		}
	}
	sort.Slice(polls, func(i, j int) bool {
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})
	return polls, nil
}

func (r *fakePollRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, question string, options []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok || p.UserID != ownerID {
		return 0, nil
	}
	p.Question = question
	p.Options = options
	r.polls[id] = p
	return 1, nil
}

func (r *fakePollRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.polls[id]; !ok {
		return pollbox_errors.ErrNotFound
	}
	delete(r.polls, id)
	return nil
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	votes []poll.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (r *fakeVoteRepo) Create(_ context.Context, v *poll.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes = append(r.votes, *v)
	return nil
}

func (r *fakeVoteRepo) ListByPoll(_ context.Context, pollID uuid.UUID) ([]poll.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var votes []poll.Vote
	for _, v := range r.votes {
		if v.PollID == pollID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (r *fakeVoteRepo) HasVote(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.PollID == pollID && v.UserID.Valid && v.UserID.UUID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeListingCache struct {
	mu            sync.Mutex
	entries       map[uuid.UUID][]poll.Poll
	invalidations int
}

func newFakeListingCache() *fakeListingCache {
	return &fakeListingCache{entries: make(map[uuid.UUID][]poll.Poll)}
}

func (c *fakeListingCache) GetUserPolls(_ context.Context, userID uuid.UUID) ([]poll.Poll, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	polls, ok := c.entries[userID]
	return polls, ok, nil
}

func (c *fakeListingCache) SetUserPolls(_ context.Context, userID uuid.UUID, polls []poll.Poll) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = polls
	return nil
}

func (c *fakeListingCache) InvalidateUserPolls(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidations++
	return nil
}
