package services

import (
	"errors"
	"fmt"
	"testing"

	"forskull/internal/db"
	"forskull/internal/models"
)

func TestCreateAnswerSelfAnswerForbidden(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	q := newQuestion(t, author, 10)

	_, err := CreateAnswer(author, q.ID, "Сам отвечу", "ru", "")
	if !errors.Is(err, ErrSelfAnswer) {
		t.Fatalf("expected ErrSelfAnswer, got %v", err)
	}
	var count int64
	db.DB.Model(&models.Answer{}).Count(&count)
	if count != 0 {
		t.Errorf("no answer may be stored, found %d", count)
	}
}

func TestCreateAnswerLimit(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	q := newQuestion(t, author, 10)

	for i := 0; i < models.MaxAnswersPerQuestion; i++ {
		helper := newUser(t, fmt.Sprintf("helper%d", i), 0)
		if _, err := CreateAnswer(helper, q.ID, "Ответ", "ru", ""); err != nil {
			t.Fatalf("answer %d failed: %v", i+1, err)
		}
	}

	late := newUser(t, "late", 0)
	_, err := CreateAnswer(late, q.ID, "Поздно", "ru", "")
	if !errors.Is(err, ErrAnswerLimitReached) {
		t.Fatalf("expected ErrAnswerLimitReached, got %v", err)
	}

	var count int64
	db.DB.Model(&models.Answer{}).Where("question_id = ?", q.ID).Count(&count)
	if count != int64(models.MaxAnswersPerQuestion) {
		t.Errorf("expected %d answers, found %d", models.MaxAnswersPerQuestion, count)
	}
}

func TestMarkBestAnswerAwardsBounty(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	helper := newUser(t, "helper", 0)
	q := newQuestion(t, author, 50)

	answer, err := CreateAnswer(helper, q.ID, "Вот решение", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	if err := MarkBestAnswer(author, answer.ID); err != nil {
		t.Fatalf("mark best failed: %v", err)
	}

	if got := userPoints(t, helper.ID); got != 50 {
		t.Errorf("answerer must receive the bounty, got %d", got)
	}
	var updated models.Answer
	db.DB.First(&updated, answer.ID)
	if !updated.IsBestAnswer {
		t.Error("answer missing the best flag")
	}
	var question models.Question
	db.DB.First(&question, q.ID)
	if !question.IsSolved {
		t.Error("question must be solved after accepting an answer")
	}

	var log models.PointLog
	if err := db.DB.Where("user_id = ? AND action = ?", helper.ID, ActionBestAnswer).
		First(&log).Error; err != nil {
		t.Fatalf("expected a point log entry: %v", err)
	}
	if log.Amount != 50 {
		t.Errorf("log amount: want 50, got %d", log.Amount)
	}
}

func TestMarkBestAnswerOnlyOnce(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	first := newUser(t, "first", 0)
	second := newUser(t, "second", 0)
	q := newQuestion(t, author, 25)

	a1, err := CreateAnswer(first, q.ID, "A", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	a2, err := CreateAnswer(second, q.ID, "B", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	if err := MarkBestAnswer(author, a1.ID); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if err := MarkBestAnswer(author, a2.ID); !errors.Is(err, ErrAlreadySolved) {
		t.Fatalf("expected ErrAlreadySolved, got %v", err)
	}

	if got := userPoints(t, second.ID); got != 0 {
		t.Errorf("second answerer must not be paid, got %d", got)
	}
	var bestCount int64
	db.DB.Model(&models.Answer{}).
		Where("question_id = ? AND is_best_answer = ?", q.ID, true).
		Count(&bestCount)
	if bestCount != 1 {
		t.Errorf("exactly one best answer expected, found %d", bestCount)
	}
}

func TestMarkBestAnswerForbiddenForOthers(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	helper := newUser(t, "helper", 0)
	q := newQuestion(t, author, 10)

	answer, err := CreateAnswer(helper, q.ID, "A", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	if err := MarkBestAnswer(helper, answer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteAnswerModeratorOnly(t *testing.T) {
	setupTestDB(t)
	author := newUser(t, "asker", 100)
	helper := newUser(t, "helper", 0)
	q := newQuestion(t, author, 10)

	answer, err := CreateAnswer(helper, q.ID, "A", "ru", "")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	if err := DeleteAnswer(helper, answer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("author retraction: expected ErrForbidden, got %v", err)
	}

	admin := newUser(t, "admin", 0)
	admin.Role = models.RoleAdmin
	db.DB.Save(admin)
	if err := DeleteAnswer(admin, answer.ID); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
	var count int64
	db.DB.Model(&models.Answer{}).Count(&count)
	if count != 0 {
		t.Errorf("answer must be gone, found %d", count)
	}
}
