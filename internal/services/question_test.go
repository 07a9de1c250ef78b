package services

import (
	"errors"
	"testing"

	"forskull/internal/db"
	"forskull/internal/models"

	"gorm.io/gorm"
)

func TestCreateQuestionChargesBounty(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 50)

	q := newQuestion(t, author, 25)

	if q.Qid == "" || len(q.Qid) != 8 {
		t.Errorf("expected 8-char qid, got %q", q.Qid)
	}
	if q.IsExpert {
		t.Error("bounty 25 must not be expert-tier")
	}
	if got := userPoints(t, author.ID); got != 25 {
		t.Errorf("expected balance 25 after debit, got %d", got)
	}
	if author.Points != 25 {
		t.Errorf("in-memory balance not updated, got %d", author.Points)
	}

	var log models.PointLog
	if err := db.DB.Where("user_id = ?", author.ID).First(&log).Error; err != nil {
		t.Fatalf("expected a point log entry: %v", err)
	}
	if log.Amount != -25 || log.Action != ActionQuestionCreate {
		t.Errorf("unexpected log entry: amount=%d action=%q", log.Amount, log.Action)
	}
}

func TestCreateQuestionExpertThreshold(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)

	q := newQuestion(t, author, 75)
	if !q.IsExpert {
		t.Error("bounty 75 must be expert-tier")
	}
	if got := userPoints(t, author.ID); got != 25 {
		t.Errorf("expected balance 25 after debit, got %d", got)
	}

	var stored models.Question
	if err := db.DB.First(&stored, q.ID).Error; err != nil {
		t.Fatalf("question not stored: %v", err)
	}
	if !stored.IsExpert {
		t.Error("stored question lost the expert flag")
	}
}

func TestCreateQuestionInsufficientPoints(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "poor", 20)

	_, err := CreateQuestion(author, CreateQuestionInput{
		Title:    "t",
		Content:  "c",
		Category: "math",
		Points:   25,
		Language: "ru",
	})
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	if got := userPoints(t, author.ID); got != 20 {
		t.Errorf("balance must stay untouched, got %d", got)
	}
	var questions int64
	db.DB.Model(&models.Question{}).Count(&questions)
	if questions != 0 {
		t.Errorf("no question may survive the failed debit, found %d", questions)
	}
	var logs int64
	db.DB.Model(&models.PointLog{}).Count(&logs)
	if logs != 0 {
		t.Errorf("no point log may survive the failed debit, found %d", logs)
	}
}

func TestCreateQuestionInvalidBounty(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)

	for _, bounty := range []int{0, 5, 30, -25, 101} {
		_, err := CreateQuestion(author, CreateQuestionInput{
			Title: "t", Content: "c", Category: "math", Points: bounty, Language: "ru",
		})
		if !errors.Is(err, ErrInvalidBounty) {
			t.Errorf("bounty %d: expected ErrInvalidBounty, got %v", bounty, err)
		}
	}
	if got := userPoints(t, author.ID); got != 100 {
		t.Errorf("balance must stay untouched, got %d", got)
	}
}

func TestDebitRollsBackWhenInsertFails(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)

	insertErr := errors.New("insert failed")
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := debitPointsTx(tx, author.ID, 25, ActionQuestionCreate); err != nil {
			return err
		}
		return insertErr
	})
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected the insert error, got %v", err)
	}

	if got := userPoints(t, author.ID); got != 100 {
		t.Errorf("debit must roll back with the failed insert, balance %d", got)
	}
	var logs int64
	db.DB.Model(&models.PointLog{}).Count(&logs)
	if logs != 0 {
		t.Errorf("point log must roll back too, found %d", logs)
	}
}

func TestDeleteQuestionCascade(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	answerer := newUser(t, "helper", 0)
	voter := newUser(t, "voter", 0)

	q := newQuestion(t, author, 10)
	answer, err := CreateAnswer(answerer, q.ID, "Ответ", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	if err := db.DB.Create(&models.Comment{AnswerID: answer.ID, UserID: author.ID, Content: "Спасибо"}).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if err := CastVote(voter, models.VoteTargetQuestion, q.ID, 1); err != nil {
		t.Fatalf("failed to vote on question: %v", err)
	}
	if err := CastVote(voter, models.VoteTargetAnswer, answer.ID, 1); err != nil {
		t.Fatalf("failed to vote on answer: %v", err)
	}

	if err := DeleteQuestion(author, q.Qid); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var questions, answers, comments, votes int64
	db.DB.Model(&models.Question{}).Count(&questions)
	db.DB.Model(&models.Answer{}).Count(&answers)
	db.DB.Model(&models.Comment{}).Count(&comments)
	db.DB.Model(&models.Vote{}).Count(&votes)
	if questions != 0 || answers != 0 || comments != 0 || votes != 0 {
		t.Errorf("cascade left rows behind: questions=%d answers=%d comments=%d votes=%d",
			questions, answers, comments, votes)
	}
}

func TestDeleteQuestionForbiddenForStranger(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	stranger := newUser(t, "stranger", 0)

	q := newQuestion(t, author, 10)

	if err := DeleteQuestion(stranger, q.Qid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := GetQuestionByQid(q.Qid); err != nil {
		t.Errorf("question must survive a forbidden delete: %v", err)
	}
}

func TestDeleteQuestionByModeratorNotifiesAuthor(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	admin := newUser(t, "admin", 0)
	admin.Role = models.RoleAdmin
	db.DB.Save(admin)

	q := newQuestion(t, author, 10)
	if err := DeleteQuestion(admin, q.Qid); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}

	var notification models.Notification
	err := db.DB.Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeSystem).
		First(&notification).Error
	if err != nil {
		t.Fatalf("expected a system notification for the author: %v", err)
	}
}
