package poll

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Poll represents the polls table. Options are stored inline as a text
// array; votes reference them by position.
type Poll struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Question  string
	Options   pq.StringArray `gorm:"type:text[]"`
	CreatedAt time.Time
}

// Vote represents the votes table. UserID is nil for anonymous votes.
// Votes are never updated; they are removed only when their poll is deleted.
type Vote struct {
	ID          uuid.UUID
	PollID      uuid.UUID
	UserID      uuid.NullUUID
	OptionIndex int
	CreatedAt   time.Time
}

// OptionResult is one option's share of a tally.
type OptionResult struct {
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

// Results is the derived tally for a poll. It is recomputed on every
// read and never persisted.
type Results struct {
	Poll       Poll
	Options    []OptionResult
	TotalVotes int
}

func (Poll) TableName() string {
	return "polls"
}

func (Vote) TableName() string {
	return "votes"
}
