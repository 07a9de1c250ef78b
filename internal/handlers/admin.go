package handlers

import (
	"math"
	"net/http"
	"strconv"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Users lists accounts for moderation, with optional username search.
func (h *AdminHandler) Users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := 30

	query := db.DB.Model(&models.User{})
	if q := c.Query("q"); q != "" {
		query = query.Where("username ILIKE ? OR email ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users)

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"page":        page,
		"total_pages": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetRole changes a user's role: user, expert, admin or blocked.
func (h *AdminHandler) SetRole(c *gin.Context) {
	actor := currentUser(c)

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
		return
	}
	switch req.Role {
	case models.RoleUser, models.RoleExpert, models.RoleAdmin, models.RoleBlocked:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестная роль"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}
	if user.ID == actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Нельзя изменить собственную роль"})
		return
	}

	updates := map[string]interface{}{"role": req.Role}
	if req.Role == models.RoleExpert {
		updates["is_expert"] = true
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		fail(c, err)
		return
	}

	if req.Role == models.RoleBlocked {
		db.DB.Create(&models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationTypeSystem,
			Message: "Ваш аккаунт заблокирован модератором",
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Роль обновлена"})
}

type grantPointsRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// GrantPoints credits or debits a user's balance manually.
func (h *AdminHandler) GrantPoints(c *gin.Context) {
	var req grantPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		fail(c, err)
		return
	}

	action := req.Reason
	if action == "" {
		action = "Корректировка администратором"
	}
	if err := services.AddPoints(user.ID, req.Amount, action); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Баланс обновлён"})
}

// Reconcile recomputes the denormalized counters on demand.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	go services.GetCounterService().ReconcileAll()
	c.JSON(http.StatusOK, gin.H{"message": "Пересчёт запущен"})
}
