package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"pollbox/internal/domain/poll"
	pollbox_errors "pollbox/pkg/errors"
)

func newVoteFixture(options ...string) (*VoteService, *fakePollRepo, *fakeVoteRepo, poll.Poll) {
	pollRepo := newFakePollRepo()
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(voteRepo, pollRepo, testLogger())

	p := poll.Poll{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Question:  "Which?",
		Options:   options,
		CreatedAt: time.Now(),
	}
	pollRepo.polls[p.ID] = p
	return svc, pollRepo, voteRepo, p
}

func castVote(t *testing.T, repo *fakeVoteRepo, pollID uuid.UUID, optionIndex int) {
	t.Helper()
	if err := repo.Create(context.Background(), &poll.Vote{
		ID:          uuid.New(),
		PollID:      pollID,
		OptionIndex: optionIndex,
		CreatedAt:   time.Now(),
	}); err != nil {
		t.Fatalf("castVote: %v", err)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		votes, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 0, 0},
		{1, 1, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 6, 17},
		{1, 8, 13},
		{3, 4, 75},
	}

	for _, tt := range tests {
		if got := CalculatePercentage(tt.votes, tt.total); got != tt.want {
			t.Errorf("CalculatePercentage(%d, %d) = %d, want %d", tt.votes, tt.total, got, tt.want)
		}
	}
}

func TestResults_Tally(t *testing.T) {
	svc, _, voteRepo, p := newVoteFixture("A", "B")
	castVote(t, voteRepo, p.ID, 0)
	castVote(t, voteRepo, p.ID, 0)
	castVote(t, voteRepo, p.ID, 1)

	results, err := svc.Results(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}

	want := []poll.OptionResult{
		{Text: "A", Votes: 2, Percentage: 67},
		{Text: "B", Votes: 1, Percentage: 33},
	}
	if !reflect.DeepEqual(results.Options, want) {
		t.Errorf("options = %+v, want %+v", results.Options, want)
	}
	if results.TotalVotes != 3 {
		t.Errorf("total = %d, want 3", results.TotalVotes)
	}
}

func TestResults_NoVotes(t *testing.T) {
	svc, _, _, p := newVoteFixture("A", "B", "C")

	results, err := svc.Results(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}

	if results.TotalVotes != 0 {
		t.Errorf("total = %d, want 0", results.TotalVotes)
	}
	for _, opt := range results.Options {
		if opt.Votes != 0 || opt.Percentage != 0 {
			t.Errorf("option %q = %d votes / %d%%, want zeros", opt.Text, opt.Votes, opt.Percentage)
		}
	}
}

func TestResults_Idempotent(t *testing.T) {
	svc, _, voteRepo, p := newVoteFixture("A", "B")
	castVote(t, voteRepo, p.ID, 1)

	first, err := svc.Results(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}
	second, err := svc.Results(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
}

// An out-of-range vote is excluded from the per-option counts but still
// inflates the total. That mismatch is the recorded behavior.
func TestResults_OutOfRangeVoteInflatesTotal(t *testing.T) {
	svc, _, voteRepo, p := newVoteFixture("A", "B")
	castVote(t, voteRepo, p.ID, 0)
	castVote(t, voteRepo, p.ID, 7)

	results, err := svc.Results(context.Background(), p.ID.String())
	if err != nil {
		t.Fatalf("Results() error: %v", err)
	}

	if results.TotalVotes != 2 {
		t.Errorf("total = %d, want 2", results.TotalVotes)
	}
	if results.Options[0].Votes != 1 || results.Options[1].Votes != 0 {
		t.Errorf("counts = [%d %d], want [1 0]", results.Options[0].Votes, results.Options[1].Votes)
	}
	if results.Options[0].Percentage != 50 {
		t.Errorf("percentage = %d, want 50", results.Options[0].Percentage)
	}
}

func TestResults_InputErrors(t *testing.T) {
	svc, _, _, _ := newVoteFixture("A", "B")

	if _, err := svc.Results(context.Background(), ""); !errors.Is(err, pollbox_errors.ErrInvalidInput) {
		t.Errorf("empty id: error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Results(context.Background(), "   "); !errors.Is(err, pollbox_errors.ErrInvalidInput) {
		t.Errorf("whitespace id: error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Results(context.Background(), uuid.NewString()); !errors.Is(err, pollbox_errors.ErrNotFound) {
		t.Errorf("unknown poll: error = %v, want ErrNotFound", err)
	}
}

func TestResults_MalformedPoll(t *testing.T) {
	svc, pollRepo, _, _ := newVoteFixture("A", "B")

	broken := poll.Poll{ID: uuid.New(), UserID: uuid.New(), Question: "?", CreatedAt: time.Now()}
	pollRepo.polls[broken.ID] = broken

	if _, err := svc.Results(context.Background(), broken.ID.String()); !errors.Is(err, pollbox_errors.ErrMalformedData) {
		t.Errorf("error = %v, want ErrMalformedData", err)
	}
}

func TestSubmit_DuplicateVoteRejected(t *testing.T) {
	svc, _, _, p := newVoteFixture("A", "B")
	ctx := ctxWithUser(uuid.New())

	if err := svc.Submit(ctx, p.ID.String(), 0); err != nil {
		t.Fatalf("first Submit() error: %v", err)
	}
	if err := svc.Submit(ctx, p.ID.String(), 1); !errors.Is(err, pollbox_errors.ErrAlreadyVoted) {
		t.Errorf("second Submit() error = %v, want ErrAlreadyVoted", err)
	}
}

func TestSubmit_AnonymousVotesAllowed(t *testing.T) {
	svc, _, voteRepo, p := newVoteFixture("A", "B")

	if err := svc.Submit(context.Background(), p.ID.String(), 0); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if err := svc.Submit(context.Background(), p.ID.String(), 0); err != nil {
		t.Fatalf("second anonymous Submit() error: %v", err)
	}

	votes, _ := voteRepo.ListByPoll(context.Background(), p.ID)
	if len(votes) != 2 {
		t.Fatalf("stored %d votes, want 2", len(votes))
	}
	for _, v := range votes {
		if v.UserID.Valid {
			t.Errorf("anonymous vote stored with user id %s", v.UserID.UUID)
		}
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc, _, _, p := newVoteFixture("A", "B")

	tests := []struct {
		name        string
		pollID      string
		optionIndex int
		wantErr     error
	}{
		{"empty poll id", "", 0, pollbox_errors.ErrInvalidInput},
		{"negative index", p.ID.String(), -1, pollbox_errors.ErrInvalidInput},
		{"malformed poll id", "not-a-uuid", 0, pollbox_errors.ErrInvalidInput},
		{"unknown poll", uuid.NewString(), 0, pollbox_errors.ErrNotFound},
		{"index out of range", p.ID.String(), 2, pollbox_errors.ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Submit(context.Background(), tt.pollID, tt.optionIndex); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasUserVoted(t *testing.T) {
	svc, _, _, p := newVoteFixture("A", "B")
	userID := uuid.New()

	if voted, err := svc.HasUserVoted(context.Background(), p.ID.String()); err != nil || voted {
		t.Errorf("anonymous: voted=%v err=%v, want false/nil", voted, err)
	}

	ctx := ctxWithUser(userID)
	if voted, err := svc.HasUserVoted(ctx, p.ID.String()); err != nil || voted {
		t.Errorf("before voting: voted=%v err=%v, want false/nil", voted, err)
	}

	if err := svc.Submit(ctx, p.ID.String(), 1); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	if voted, err := svc.HasUserVoted(ctx, p.ID.String()); err != nil || !voted {
		t.Errorf("after voting: voted=%v err=%v, want true/nil", voted, err)
	}
}
