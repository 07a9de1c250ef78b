package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/services"
	"forskull/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// fillQuestionCounts batch-fills live answer and like counts. Counts are
// recomputed from the vote/answer tables on every listing so they cannot
// drift from the store.
func fillQuestionCounts(questions []models.Question, viewerID uint) {
	if len(questions) == 0 {
		return
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	type countResult struct {
		QuestionID uint
		Count      int
	}

	var answerCounts []countResult
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", ids).
		Group("question_id").
		Scan(&answerCounts)

	var likeCounts []countResult
	db.DB.Model(&models.Vote{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ? AND value = 1", ids).
		Group("question_id").
		Scan(&likeCounts)

	answerMap := make(map[uint]int)
	for _, r := range answerCounts {
		answerMap[r.QuestionID] = r.Count
	}
	likeMap := make(map[uint]int)
	for _, r := range likeCounts {
		likeMap[r.QuestionID] = r.Count
	}

	voteMap := make(map[uint]int)
	if viewerID > 0 {
		var votes []models.Vote
		db.DB.Where("user_id = ? AND question_id IN ?", viewerID, ids).Find(&votes)
		for _, v := range votes {
			voteMap[*v.QuestionID] = v.Value
		}
	}

	for i := range questions {
		questions[i].LiveAnswersCount = answerMap[questions[i].ID]
		questions[i].LiveLikesCount = likeMap[questions[i].ID]
		if v, ok := voteMap[questions[i].ID]; ok {
			value := v
			questions[i].UserVote = &value
		}
	}
}

// List returns the question feed with filtering, search, sorting and
// pagination.
func (h *QuestionHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	category := c.Query("category")
	language := c.Query("language")
	search := c.Query("q")
	sortBy := c.DefaultQuery("sort", "newest")
	viewer := currentUser(c)

	perPage := 30
	offset := (page - 1) * perPage

	query := db.DB.Model(&models.Question{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	switch sortBy {
	case "oldest":
		query = query.Order("created_at ASC")
	case "most_liked":
		// likes_count is the denormalized sort column; the payload still
		// carries live counts.
		query = query.Order("likes_count DESC, created_at DESC")
	case "points_high":
		query = query.Order("points DESC, created_at DESC")
	case "points_low":
		query = query.Order("points ASC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var questions []models.Question
	query.Preload("User").Limit(perPage).Offset(offset).Find(&questions)

	fillQuestionCounts(questions, viewerID(viewer))

	c.JSON(http.StatusOK, gin.H{
		"questions":    questions,
		"total":        total,
		"current_page": page,
		"total_pages":  totalPages,
	})
}

func viewerID(u *models.User) uint {
	if u == nil {
		return 0
	}
	return u.ID
}

// Detail returns one question with its rendered body.
func (h *QuestionHandler) Detail(c *gin.Context) {
	qid := c.Param("qid")

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		fail(c, err)
		return
	}

	viewer := currentUser(c)
	qs := []models.Question{*question}
	fillQuestionCounts(qs, viewerID(viewer))

	c.JSON(http.StatusOK, gin.H{
		"question":     qs[0],
		"content_html": utils.RenderMarkdown(question.Content),
		"author_rank":  services.DisplayRank(&question.User),
	})
}

type createQuestionRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
	Points   int    `json:"points" binding:"required"`
	Language string `json:"language" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *QuestionHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все обязательные поля"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестная категория"})
		return
	}
	if req.Language != "ru" && req.Language != "uz" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Поддерживаются языки ru и uz"})
		return
	}

	question, err := services.CreateQuestion(user, services.CreateQuestionInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Points:   req.Points,
		Language: req.Language,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Вопрос создан",
		"question": question,
		"points":   user.Points,
	})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	qid := c.Param("qid")

	if err := services.DeleteQuestion(user, qid); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Вопрос удалён"})
}

// Categories lists the fixed category vocabulary for client dropdowns.
func (h *QuestionHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.QuestionCategories,
		"bounties":   models.QuestionBounties,
	})
}

// Feed is the cached unfiltered first page used by the landing screen.
func (h *QuestionHandler) Feed(c *gin.Context) {
	cacheKey := services.FeedCacheKey(1)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var questions []models.Question
	db.DB.Preload("User").
		Order("created_at DESC").
		Limit(30).
		Find(&questions)
	fillQuestionCounts(questions, 0)

	data := gin.H{"questions": questions}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	c.JSON(http.StatusOK, data)
}
