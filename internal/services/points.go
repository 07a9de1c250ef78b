package services

import (
	"errors"

	"forskull/internal/db"
	"forskull/internal/models"

	"gorm.io/gorm"
)

// Point actions recorded in the point log, in the user-facing language.
const (
	ActionQuestionCreate = "Создание вопроса"
	ActionBestAnswer     = "Лучший ответ"
	ActionSignupBonus    = "Бонус за регистрацию"
)

// SignupBonusPoints is credited once at registration so a new user can
// afford their first questions.
const SignupBonusPoints = 100

// Errors surfaced by the economy and content services. Handlers translate
// them into HTTP responses; nothing else inspects their text.
var (
	ErrInsufficientPoints = errors.New("not enough points")
	ErrInvalidBounty      = errors.New("invalid question bounty")
	ErrAnswerLimitReached = errors.New("answer limit reached")
	ErrSelfAnswer         = errors.New("cannot answer own question")
	ErrAlreadySolved      = errors.New("question already solved")
	ErrForbidden          = errors.New("forbidden")
)

// AddPoints credits (or debits, for negative amounts) a user's balance and
// records a point log entry, both inside one transaction.
func AddPoints(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return addPointsTx(tx, userID, amount, action)
	})
}

func addPointsTx(tx *gorm.DB, userID uint, amount int, action string) error {
	log := models.PointLog{
		UserID: userID,
		Amount: amount,
		Action: action,
	}
	if err := tx.Create(&log).Error; err != nil {
		return err
	}

	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount)).
		Error
}

// debitPointsTx charges amount from the user's balance as a single
// conditional update: the write only lands when the balance covers it, so a
// concurrent debit cannot push the balance below zero. Returns
// ErrInsufficientPoints when the condition fails.
func debitPointsTx(tx *gorm.DB, userID uint, amount int, action string) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		UpdateColumn("points", gorm.Expr("points - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientPoints
	}

	log := models.PointLog{
		UserID: userID,
		Amount: -amount,
		Action: action,
	}
	return tx.Create(&log).Error
}

// AddPointsAsync fires the credit off the request path.
func AddPointsAsync(userID uint, amount int, action string) {
	go func() {
		_ = AddPoints(userID, amount, action)
	}()
}
