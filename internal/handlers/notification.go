package handlers

import (
	"math"
	"net/http"
	"strconv"

	"forskull/internal/db"
	"forskull/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List returns the caller's notifications, unread first.
func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := 20

	var total int64
	db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&total)

	var notifications []models.Notification
	db.DB.Where("user_id = ?", user.ID).
		Order("is_read ASC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications)

	var unread int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
		"page":          page,
		"total_pages":   int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// Read marks one notification as read.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := currentUser(c)

	result := db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Update("is_read", true)
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Уведомление не найдено"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

// ReadAll marks every notification of the caller as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := currentUser(c)

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

// Delete removes one notification of the caller.
func (h *NotificationHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	result := db.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Delete(&models.Notification{})
	if result.Error != nil {
		fail(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Уведомление не найдено"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
