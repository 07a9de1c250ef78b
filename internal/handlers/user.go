package handlers

import (
	"net/http"

	"forskull/internal/db"
	"forskull/internal/middleware"
	"forskull/internal/models"
	"forskull/internal/services"
	"forskull/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile is the public profile: points, rank and content stats.
func (h *UserHandler) Profile(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		fail(c, err)
		return
	}

	var questionCount, answerCount, bestAnswerCount int64
	db.DB.Model(&models.Question{}).Where("user_id = ?", user.ID).Count(&questionCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ?", user.ID).Count(&answerCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ? AND is_best_answer = ?", user.ID, true).Count(&bestAnswerCount)

	var questions []models.Question
	db.DB.Preload("User").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&questions)
	fillQuestionCounts(questions, 0)

	var answers []models.Answer
	db.DB.Preload("Question").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&answers)

	c.JSON(http.StatusOK, gin.H{
		"user":              user,
		"rank":              services.DisplayRank(&user),
		"reputation_level":  services.ReputationLevel(user.Points),
		"question_count":    questionCount,
		"answer_count":      answerCount,
		"best_answer_count": bestAnswerCount,
		"questions":         questions,
		"answers":           answers,
	})
}

// Me returns the session user with the derived rank and unread counter.
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)

	unread := int64(0)
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		unread = count.(int64)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"rank":         services.DisplayRank(user),
		"is_blocked":   user.IsBlocked(),
		"unread_count": unread,
	})
}

// PointLogs lists the caller's point history, newest first.
func (h *UserHandler) PointLogs(c *gin.Context) {
	user := currentUser(c)

	var logs []models.PointLog
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs)

	c.JSON(http.StatusOK, gin.H{"logs": logs, "points": user.Points})
}

type updateSettingsRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Language    *string `json:"language"`
	OldPassword string  `json:"old_password"`
	NewPassword string  `json:"new_password"`
}

// UpdateSettings edits the mutable profile fields.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := currentUser(c)

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
		return
	}

	updates := make(map[string]interface{})
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Language != nil {
		if *req.Language != "ru" && *req.Language != "uz" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Поддерживаются языки ru и uz"})
			return
		}
		updates["language"] = *req.Language
	}

	if req.OldPassword != "" && req.NewPassword != "" {
		if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Старый пароль неверен"})
			return
		}
		if len(req.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Пароль должен быть не короче 6 символов"})
			return
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			fail(c, err)
			return
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Настройки сохранены"})
}
