package models

import (
	"time"
)

// Allowed question bounties. A question costing 75 or more is expert-tier.
var QuestionBounties = []int{10, 25, 50, 75, 100}

const ExpertBountyThreshold = 75

// Question categories are a fixed vocabulary shared with the clients;
// translation happens client-side.
var QuestionCategories = []string{
	"math", "physics", "programming", "literature", "art",
	"history", "biology", "chemistry", "economics", "other",
}

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Qid       string    `gorm:"uniqueIndex;size:8;not null" json:"qid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"size:30;not null;index" json:"category"`
	Points    int       `gorm:"not null" json:"points"` // bounty, debited from the author at creation
	Language  string    `gorm:"size:5;not null;index" json:"language"`
	IsExpert  bool      `gorm:"default:false" json:"is_expert"`
	IsSolved  bool      `gorm:"default:false" json:"is_solved"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized counters maintained by the counter service; used for
	// sorting only. API responses carry the live counts below.
	LikesCount   int `gorm:"default:0" json:"-"`
	AnswersCount int `gorm:"default:0" json:"-"`

	// Filled per request, not stored.
	LiveAnswersCount int  `gorm:"-" json:"answers_count"`
	LiveLikesCount   int  `gorm:"-" json:"likes_count"`
	UserVote         *int `gorm:"-" json:"user_vote,omitempty"`
}

func ValidBounty(points int) bool {
	for _, p := range QuestionBounties {
		if p == points {
			return true
		}
	}
	return false
}

func ValidCategory(category string) bool {
	for _, c := range QuestionCategories {
		if c == category {
			return true
		}
	}
	return false
}
