package handlers

import (
	"net/http"
	"strconv"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/services"
	"forskull/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct{}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{}
}

// List returns a question's answers oldest-first, with rendered bodies,
// live like counts and the viewer's votes.
func (h *AnswerHandler) List(c *gin.Context) {
	qid := c.Param("qid")

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		fail(c, err)
		return
	}

	var answers []models.Answer
	db.DB.Preload("User").
		Where("question_id = ?", question.ID).
		Order("created_at ASC").
		Find(&answers)

	viewer := currentUser(c)
	payload := make([]gin.H, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		a.LiveLikesCount = int(services.CountLikes(models.VoteTargetAnswer, a.ID))
		if viewer != nil {
			a.UserVote = services.GetUserVote(viewer.ID, models.VoteTargetAnswer, a.ID)
		}
		payload = append(payload, gin.H{
			"answer":       a,
			"content_html": utils.RenderMarkdown(a.Content),
			"author_rank":  services.DisplayRank(&a.User),
		})
	}

	c.JSON(http.StatusOK, gin.H{"answers": payload})
}

type createAnswerRequest struct {
	Content  string `json:"content" binding:"required"`
	Language string `json:"language"`
	ImageURL string `json:"image_url"`
}

func (h *AnswerHandler) Create(c *gin.Context) {
	user := currentUser(c)
	qid := c.Param("qid")

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		fail(c, err)
		return
	}

	var req createAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ответ не может быть пустым"})
		return
	}
	language := req.Language
	if language != "uz" {
		language = "ru"
	}

	answer, err := services.CreateAnswer(user, question.ID, req.Content, language, req.ImageURL)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ответ добавлен",
		"answer":  answer,
	})
}

// MarkBest accepts an answer as the best one; question author only.
func (h *AnswerHandler) MarkBest(c *gin.Context) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	if err := services.MarkBestAnswer(user, uint(id)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Лучший ответ выбран"})
}

// Delete removes an answer; experts and admins only.
func (h *AnswerHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}

	if err := services.DeleteAnswer(user, uint(id)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ответ удалён"})
}
