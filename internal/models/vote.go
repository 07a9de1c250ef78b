package models

import (
	"time"
)

// Vote target types.
const (
	VoteTargetQuestion = "question"
	VoteTargetAnswer   = "answer"
)

// Vote holds a single user's vote on exactly one question or one answer.
// Exactly one of QuestionID/AnswerID is set. The composite unique indexes
// enforce at most one row per (user, target); Postgres treats NULLs as
// distinct, so the indexes do not collide across target types.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_vote_user_question;uniqueIndex:idx_vote_user_answer" json:"user_id"`
	QuestionID *uint     `gorm:"index;uniqueIndex:idx_vote_user_question" json:"question_id,omitempty"`
	AnswerID   *uint     `gorm:"index;uniqueIndex:idx_vote_user_answer" json:"answer_id,omitempty"`
	Value      int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
