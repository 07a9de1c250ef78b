package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/services"
	"forskull/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		captchaService: services.NewCaptchaService(),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Language string `json:"language"`
	Captcha  string `json:"captcha" binding:"required"`
}

// Captcha issues a math problem and stores the answer in the session.
func (h *AuthHandler) Captcha(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"captcha": question})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все поля"})
		return
	}

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	given, convErr := strconv.Atoi(strings.TrimSpace(req.Captcha))
	if !ok || convErr != nil || given != expectedAnswer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный ответ на проверочный вопрос"})
		return
	}
	session.Delete("captcha_answer")
	session.Save()

	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный email"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пароль должен быть не короче 6 символов"})
		return
	}

	language := req.Language
	if language != "uz" {
		language = "ru"
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hash,
		Language:   language,
		Role:       models.RoleUser,
		VerifyCode: utils.GenerateRandomCode(6),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Имя пользователя или email уже зарегистрированы"})
		return
	}

	// Starting balance, so the first questions are affordable.
	services.AddPointsAsync(user.ID, services.SignupBonusPoints, services.ActionSignupBonus)

	services.GetMailService().SendWelcomeEmail(user.Email, user.VerifyCode)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Регистрация успешна! Код активации отправлен на ваш email.",
	})
}

type activateRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func (h *AuthHandler) Activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все поля"})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
		return
	}

	if user.IsActivated {
		c.JSON(http.StatusOK, gin.H{"message": "Аккаунт уже активирован"})
		return
	}
	if user.VerifyCode != req.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный код активации"})
		return
	}

	db.DB.Model(&user).Updates(map[string]interface{}{
		"is_activated": true,
		"verify_code":  "",
	})

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"message": "Аккаунт активирован"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все поля"})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
		return
	}
	if !user.IsActivated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Аккаунт не активирован, проверьте почту"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"rank":       services.DisplayRank(&user),
		"is_blocked": user.IsBlocked(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Вы вышли из системы"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Укажите email"})
		return
	}

	// Do not reveal whether the account exists.
	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err == nil {
		code := utils.GenerateRandomCode(6)
		db.DB.Model(&user).Update("verify_code", code)
		services.GetMailService().SendPasswordResetEmail(user.Email, code)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Если аккаунт существует, код отправлен на почту"})
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все поля"})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
		return
	}
	if user.VerifyCode == "" || user.VerifyCode != req.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный или просроченный код"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пароль должен быть не короче 6 символов"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	db.DB.Model(&user).Updates(map[string]interface{}{
		"password":    hash,
		"verify_code": "",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Пароль изменён, войдите с новым паролем"})
}
