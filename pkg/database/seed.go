package database

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pollbox/internal/domain/poll"
	"pollbox/internal/domain/user"
)

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	AdminUser *user.User
	TestUsers []*user.User
	Polls     []*poll.Poll
}

// SeedAdmin creates the admin user if it does not already exist.
func SeedAdmin(email, password string) (*user.User, error) {
	var existing user.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Role:         user.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := DB.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// SeedDevelopment creates an admin, a couple of test users and sample
// polls with votes. Intended for local environments only.
func SeedDevelopment(adminEmail, adminPass string) (*SeedResult, error) {
	log.Println("Starting database seeding...")

	admin, err := SeedAdmin(adminEmail, adminPass)
	if err != nil {
		return nil, err
	}

	result := &SeedResult{AdminUser: admin}

	for _, name := range []string{"alice", "bob"} {
		hash, err := bcrypt.GenerateFromPassword([]byte(name+"-password"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u := &user.User{
			ID:           uuid.New(),
			Email:        name + "@example.com",
			PasswordHash: string(hash),
			DisplayName:  name,
			Role:         user.RoleUser,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := DB.Where("email = ?", u.Email).FirstOrCreate(u).Error; err != nil {
			return nil, err
		}
		result.TestUsers = append(result.TestUsers, u)
	}

	sample := &poll.Poll{
		ID:        uuid.New(),
		UserID:    result.TestUsers[0].ID,
		Question:  "What should we have for lunch?",
		Options:   []string{"Pizza", "Sushi", "Tacos"},
		CreatedAt: time.Now(),
	}
	if err := DB.Where("question = ?", sample.Question).FirstOrCreate(sample).Error; err != nil {
		return nil, err
	}
	result.Polls = append(result.Polls, sample)

	// Votes have no natural key to upsert on, so guard on the poll
	// already having any; re-running seed-dev must not pile up rows.
	var voteCount int64
	if err := DB.Model(&poll.Vote{}).Where("poll_id = ?", sample.ID).Count(&voteCount).Error; err != nil {
		return nil, err
	}
	if voteCount == 0 {
		votes := []poll.Vote{
			{ID: uuid.New(), PollID: sample.ID, UserID: uuid.NullUUID{UUID: result.TestUsers[1].ID, Valid: true}, OptionIndex: 0, CreatedAt: time.Now()},
			{ID: uuid.New(), PollID: sample.ID, OptionIndex: 2, CreatedAt: time.Now()},
		}
		for i := range votes {
			if err := DB.Create(&votes[i]).Error; err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
