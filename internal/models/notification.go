package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeNewAnswer  NotificationType = "new_answer"
	NotificationTypeBestAnswer NotificationType = "best_answer"
	NotificationTypeSystem     NotificationType = "system"
)

type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"` // receiver
	User       User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID    *uint            `gorm:"index" json:"actor_id,omitempty"` // sender, nil for system
	Actor      *User            `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor,omitempty"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message    string           `gorm:"type:text" json:"message"`
	QuestionID *uint            `gorm:"index" json:"question_id,omitempty"`
	AnswerID   *uint            `gorm:"index" json:"answer_id,omitempty"`
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
