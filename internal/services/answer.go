package services

import (
	"fmt"

	"forskull/internal/db"
	"forskull/internal/models"

	"gorm.io/gorm"
)

// CreateAnswer inserts an answer after the two pre-insert guards: the
// author may not answer their own question, and a question accepts at most
// three answers. The question author gets a notification.
func CreateAnswer(author *models.User, questionID uint, content, language, imageURL string) (*models.Answer, error) {
	var question models.Question
	if err := db.DB.First(&question, questionID).Error; err != nil {
		return nil, err
	}

	if question.UserID == author.ID {
		return nil, ErrSelfAnswer
	}

	var count int64
	if err := db.DB.Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= models.MaxAnswersPerQuestion {
		return nil, ErrAnswerLimitReached
	}

	answer := models.Answer{
		QuestionID: questionID,
		UserID:     author.ID,
		Content:    content,
		Language:   language,
		ImageURL:   imageURL,
	}
	if err := db.DB.Create(&answer).Error; err != nil {
		return nil, err
	}

	GetCounterService().ScheduleUpdate(questionID)

	go func() {
		notification := models.Notification{
			UserID:     question.UserID,
			ActorID:    &author.ID,
			Type:       models.NotificationTypeNewAnswer,
			Message:    fmt.Sprintf("Новый ответ на ваш вопрос «%s»", question.Title),
			QuestionID: &question.ID,
			AnswerID:   &answer.ID,
		}
		db.DB.Create(&notification)

		var questionAuthor models.User
		if err := db.DB.First(&questionAuthor, question.UserID).Error; err == nil {
			GetMailService().SendAnswerNotification(questionAuthor.Email, author.Username, question.Title, question.Qid)
		}
	}()

	return &answer, nil
}

// MarkBestAnswer lets the question author accept exactly one answer: every
// other best flag on the question is cleared, the question becomes solved,
// and the bounty is credited to the answer author in the same transaction.
func MarkBestAnswer(actor *models.User, answerID uint) error {
	var answer models.Answer
	if err := db.DB.First(&answer, answerID).Error; err != nil {
		return err
	}

	var question models.Question
	if err := db.DB.First(&question, answer.QuestionID).Error; err != nil {
		return err
	}

	if question.UserID != actor.ID {
		return ErrForbidden
	}
	if question.IsSolved {
		return ErrAlreadySolved
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", question.ID).
			Update("is_best_answer", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Answer{}).
			Where("id = ?", answer.ID).
			Update("is_best_answer", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Question{}).
			Where("id = ?", question.ID).
			Update("is_solved", true).Error; err != nil {
			return err
		}
		// The bounty moves to the answerer here; the asker already paid it
		// at creation time.
		return addPointsTx(tx, answer.UserID, question.Points, ActionBestAnswer)
	})
	if err != nil {
		return err
	}

	go func() {
		notification := models.Notification{
			UserID:     answer.UserID,
			ActorID:    &actor.ID,
			Type:       models.NotificationTypeBestAnswer,
			Message:    fmt.Sprintf("Ваш ответ на вопрос «%s» отмечен как лучший (+%d баллов)", question.Title, question.Points),
			QuestionID: &question.ID,
			AnswerID:   &answer.ID,
		}
		db.DB.Create(&notification)
	}()

	return nil
}

// DeleteAnswer removes an answer with its comments, votes and
// notifications. Experts and admins only; authors cannot retract answers.
func DeleteAnswer(actor *models.User, answerID uint) error {
	if !actor.IsModerator() {
		return ErrForbidden
	}

	var answer models.Answer
	if err := db.DB.First(&answer, answerID).Error; err != nil {
		return err
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&answer).Error
	})
	if err != nil {
		return err
	}

	GetCounterService().ScheduleUpdate(answer.QuestionID)

	notification := models.Notification{
		UserID:  answer.UserID,
		Type:    models.NotificationTypeSystem,
		Message: "Ваш ответ был удалён модератором.",
	}
	db.DB.Create(&notification)

	return nil
}
