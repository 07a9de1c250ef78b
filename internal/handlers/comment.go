package handlers

import (
	"net/http"
	"strconv"

	"forskull/internal/db"
	"forskull/internal/models"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func (h *CommentHandler) List(c *gin.Context) {
	answerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	var comments []models.Comment
	db.DB.Preload("User").
		Where("answer_id = ?", answerID).
		Order("created_at ASC").
		Find(&comments)

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)

	answerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	var answer models.Answer
	if err := db.DB.First(&answer, answerID).Error; err != nil {
		fail(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Комментарий не может быть пустым"})
		return
	}

	comment := models.Comment{
		AnswerID: answer.ID,
		UserID:   user.ID,
		Content:  req.Content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Комментарий добавлен", "comment": comment})
}

// Update edits the caller's own comment.
func (h *CommentHandler) Update(c *gin.Context) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Комментарий не может быть пустым"})
		return
	}

	res := db.DB.Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("content", req.Content)
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Комментарий не найден"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Комментарий обновлён"})
}

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	res := db.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Comment{})
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Комментарий не найден"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Комментарий удалён"})
}
