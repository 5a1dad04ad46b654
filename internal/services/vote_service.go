package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollbox/internal/domain/poll"
	"pollbox/internal/repository"
	pollbox_errors "pollbox/pkg/errors"
	"pollbox/pkg/logger"
)

type VoteService struct {
	voteRepo repository.VoteRepository
	pollRepo repository.PollRepository
	logger   *logger.Logger
}

func NewVoteService(voteRepo repository.VoteRepository, pollRepo repository.PollRepository, l *logger.Logger) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		pollRepo: pollRepo,
		logger:   l,
	}
}

// Submit records a vote. Anonymous callers are allowed; authenticated
// callers may vote once per poll. The existence check and the insert are
// two separate statements with no transaction between them, so two
// near-simultaneous votes by the same user can both land. Best effort.
func (s *VoteService) Submit(ctx context.Context, pollID string, optionIndex int) error {
	if strings.TrimSpace(pollID) == "" || optionIndex < 0 {
		return pollbox_errors.ErrInvalidInput
	}

	id, err := uuid.Parse(pollID)
	if err != nil {
		return pollbox_errors.ErrInvalidInput
	}

	p, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if optionIndex >= len(p.Options) {
		return pollbox_errors.ErrInvalidOption
	}

	voterID := uuid.NullUUID{}
	if userID, ok := UserIDFromContext(ctx); ok {
		voted, err := s.voteRepo.HasVote(ctx, id, userID)
		if err != nil {
			return err
		}
		if voted {
			return pollbox_errors.ErrAlreadyVoted
		}
		voterID = uuid.NullUUID{UUID: userID, Valid: true}
	}

	vote := poll.Vote{
		ID:          uuid.New(),
		PollID:      id,
		UserID:      voterID,
		OptionIndex: optionIndex,
		CreatedAt:   time.Now(),
	}
	return s.voteRepo.Create(ctx, &vote)
}

// Results tallies a poll's votes. Votes with an out-of-range option index
// are skipped in the per-option counts but still included in the total,
// so percentages may not account for every counted vote. Changing that
// is a product call, not a tally bug.
func (s *VoteService) Results(ctx context.Context, pollID string) (poll.Results, error) {
	if strings.TrimSpace(pollID) == "" {
		return poll.Results{}, pollbox_errors.ErrInvalidInput
	}

	id, err := uuid.Parse(pollID)
	if err != nil {
		return poll.Results{}, pollbox_errors.ErrInvalidInput
	}

	p, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return poll.Results{}, err
	}

	if len(p.Options) == 0 {
		return poll.Results{}, pollbox_errors.ErrMalformedData
	}

	votes, err := s.voteRepo.ListByPoll(ctx, id)
	if err != nil {
		return poll.Results{}, err
	}

	counts := make([]int, len(p.Options))
	for _, v := range votes {
		if v.OptionIndex < 0 || v.OptionIndex >= len(p.Options) {
			s.logger.Warnf("skipping vote %s with out-of-range option index %d on poll %s", v.ID, v.OptionIndex, p.ID)
			continue
		}
		counts[v.OptionIndex]++
	}

	total := len(votes)
	options := make([]poll.OptionResult, len(p.Options))
	for i, text := range p.Options {
		options[i] = poll.OptionResult{
			Text:       text,
			Votes:      counts[i],
			Percentage: CalculatePercentage(counts[i], total),
		}
	}

	return poll.Results{
		Poll:       p,
		Options:    options,
		TotalVotes: total,
	}, nil
}

// HasUserVoted reports whether the caller already voted on the poll.
// Anonymous callers get false.
func (s *VoteService) HasUserVoted(ctx context.Context, pollID string) (bool, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return false, nil
	}

	id, err := uuid.Parse(pollID)
	if err != nil {
		return false, pollbox_errors.ErrInvalidInput
	}

	return s.voteRepo.HasVote(ctx, id, userID)
}

// CalculatePercentage rounds a vote count's share of the total to the
// nearest whole percent. Zero counts and zero totals are both 0.
// Independent rounding means a poll's percentages need not sum to 100.
func CalculatePercentage(votes, total int) int {
	if total == 0 || votes == 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(total) * 100))
}
