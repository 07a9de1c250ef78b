package handlers

import (
	"errors"
	"net/http"

	"forskull/internal/middleware"
	"forskull/internal/models"
	"forskull/internal/services"

	"github.com/gin-gonic/gin"
)

// currentUser returns the signed-in user from the context, or nil.
func currentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// fail maps service errors onto HTTP responses with the user-facing
// Russian messages the clients display directly.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientPoints):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Недостаточно баллов. Отвечайте на вопросы, чтобы заработать баллы!"})
	case errors.Is(err, services.ErrInvalidBounty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимая ставка баллов"})
	case errors.Is(err, services.ErrAnswerLimitReached):
		c.JSON(http.StatusConflict, gin.H{"error": "На вопрос уже дано максимальное количество ответов (3)"})
	case errors.Is(err, services.ErrSelfAnswer):
		c.JSON(http.StatusForbidden, gin.H{"error": "Нельзя отвечать на собственные вопросы"})
	case errors.Is(err, services.ErrAlreadySolved):
		c.JSON(http.StatusConflict, gin.H{"error": "Лучший ответ уже выбран"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "У вас нет прав для этого действия"})
	case errors.Is(err, services.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный голос"})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Не найдено"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка, попробуйте позже"})
	}
}
