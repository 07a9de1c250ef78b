package models

import (
	"time"
)

// MaxAnswersPerQuestion caps how many answers a single question accepts.
const MaxAnswersPerQuestion = 3

type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionID   uint      `gorm:"not null;index" json:"question_id"`
	Question     Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Language     string    `gorm:"size:5;not null" json:"language"`
	IsBestAnswer bool      `gorm:"default:false" json:"is_best_answer"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Filled per request, not stored.
	LiveLikesCount int  `gorm:"-" json:"likes_count"`
	UserVote       *int `gorm:"-" json:"user_vote,omitempty"`
}
