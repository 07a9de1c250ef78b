package services

import (
	"errors"
	"fmt"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/utils"

	"gorm.io/gorm"
)

// CreateQuestionInput carries the validated form fields for a new question.
type CreateQuestionInput struct {
	Title    string
	Content  string
	Category string
	Points   int
	Language string
	ImageURL string
}

// CreateQuestion charges the author the bounty and inserts the question.
// The debit is a conditional decrement executed in the same transaction as
// the insert, so the author is charged exactly once per created question:
// an insert failure rolls the debit back, and a balance below the bounty
// fails the whole operation with ErrInsufficientPoints before any write
// survives.
func CreateQuestion(author *models.User, in CreateQuestionInput) (*models.Question, error) {
	if !models.ValidBounty(in.Points) {
		return nil, ErrInvalidBounty
	}

	question := models.Question{
		Qid:      utils.RandStringBytesMaskImpr(8),
		UserID:   author.ID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Points:   in.Points,
		Language: in.Language,
		IsExpert: in.Points >= models.ExpertBountyThreshold,
		ImageURL: in.ImageURL,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := debitPointsTx(tx, author.ID, in.Points, ActionQuestionCreate); err != nil {
			return err
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		return nil, err
	}

	// Keep the in-memory balance consistent for the rest of the request.
	author.Points -= in.Points

	utils.GetCache().Delete(FeedCacheKey(1))
	return &question, nil
}

// DeleteQuestion removes a question with everything hanging off it: answers,
// their comments, votes on the question and its answers, and related
// notifications. Allowed for the author, experts and admins.
func DeleteQuestion(actor *models.User, qid string) error {
	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		return err
	}

	if question.UserID != actor.ID && !actor.IsModerator() {
		return ErrForbidden
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var answerIDs []uint
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", question.ID).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}

		if len(answerIDs) > 0 {
			if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&question).Error
	})
	if err != nil {
		return err
	}

	// Tell the author when a moderator removed their question.
	if question.UserID != actor.ID {
		notification := models.Notification{
			UserID:  question.UserID,
			Type:    models.NotificationTypeSystem,
			Message: fmt.Sprintf("Ваш вопрос «%s» был удалён модератором.", question.Title),
		}
		db.DB.Create(&notification)
	}

	utils.GetCache().Delete(FeedCacheKey(1))
	return nil
}

// GetQuestionByQid loads a question with its author.
func GetQuestionByQid(qid string) (*models.Question, error) {
	var question models.Question
	if err := db.DB.Preload("User").Where("qid = ?", qid).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
