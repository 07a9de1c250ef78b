package models

import (
	"time"
)

// Comment is attached to an answer, never directly to a question.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;index" json:"answer_id"`
	Answer    Answer    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
