package services

import (
	"errors"

	"forskull/internal/db"
	"forskull/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidVote = errors.New("invalid vote target or value")

// CastVote applies the per-user vote slot semantics for a question or an
// answer: no existing vote inserts one, a repeated vote in the same
// direction removes it, an opposite vote flips the stored row in place.
// The (user, target) pair never holds more than one row.
func CastVote(user *models.User, targetType string, targetID uint, value int) error {
	if value != 1 && value != -1 {
		return ErrInvalidVote
	}

	// The target must exist; voting on a deleted item is a no-op error.
	switch targetType {
	case models.VoteTargetQuestion:
		var q models.Question
		if err := db.DB.Select("id").First(&q, targetID).Error; err != nil {
			return err
		}
	case models.VoteTargetAnswer:
		var a models.Answer
		if err := db.DB.Select("id").First(&a, targetID).Error; err != nil {
			return err
		}
	default:
		return ErrInvalidVote
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", user.ID)
		if targetType == models.VoteTargetQuestion {
			query = query.Where("question_id = ?", targetID)
		} else {
			query = query.Where("answer_id = ?", targetID)
		}

		var existing models.Vote
		err := query.First(&existing).Error
		switch {
		case err == nil && existing.Value == value:
			// Toggle off
			return tx.Delete(&existing).Error
		case err == nil:
			// Flip in place, never a second row
			return tx.Model(&existing).Update("value", value).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				UserID: user.ID,
				Value:  value,
			}
			if targetType == models.VoteTargetQuestion {
				vote.QuestionID = &targetID
			} else {
				vote.AnswerID = &targetID
			}
			return tx.Create(&vote).Error
		default:
			return err
		}
	})
	if err != nil {
		return err
	}

	if targetType == models.VoteTargetQuestion {
		GetCounterService().ScheduleUpdate(targetID)
	} else {
		var answer models.Answer
		if dberr := db.DB.Select("question_id").First(&answer, targetID).Error; dberr == nil {
			GetCounterService().ScheduleUpdate(answer.QuestionID)
		}
	}
	return nil
}

// CountLikes returns the number of upvotes on a target. Listings re-query
// this after every mutation instead of adjusting a cached number.
func CountLikes(targetType string, targetID uint) int64 {
	var count int64
	q := db.DB.Model(&models.Vote{}).Where("value = 1")
	if targetType == models.VoteTargetQuestion {
		q = q.Where("question_id = ?", targetID)
	} else {
		q = q.Where("answer_id = ?", targetID)
	}
	q.Count(&count)
	return count
}

// GetUserVote returns the viewer's vote on a target, or nil.
func GetUserVote(userID uint, targetType string, targetID uint) *int {
	var vote models.Vote
	q := db.DB.Where("user_id = ?", userID)
	if targetType == models.VoteTargetQuestion {
		q = q.Where("question_id = ?", targetID)
	} else {
		q = q.Where("answer_id = ?", targetID)
	}
	if err := q.First(&vote).Error; err != nil {
		return nil
	}
	return &vote.Value
}
