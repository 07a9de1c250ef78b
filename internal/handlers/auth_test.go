package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"forskull/internal/db"
	"forskull/internal/middleware"
	"forskull/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("forskull_session", store))
	r.Use(middleware.LoadUser())

	authHandler := NewAuthHandler()
	userHandler := NewUserHandler()

	r.GET("/api/captcha", authHandler.Captcha)
	r.POST("/api/register", authHandler.Register)
	r.POST("/api/activate", authHandler.Activate)
	r.POST("/api/login", authHandler.Login)

	me := r.Group("/api", middleware.AuthRequired())
	me.GET("/me", userHandler.Me)

	return r
}

// session stores the cookies between requests the way a browser would.
type session struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func (s *session) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		s.cookies = set
	}
	return w
}

func solveCaptcha(t *testing.T, s *session) string {
	t.Helper()
	w := s.do("GET", "/api/captcha", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("captcha: want 200, got %d", w.Code)
	}
	var resp struct {
		Captcha string `json:"captcha"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad captcha response: %v", err)
	}
	var a, b int
	var op string
	if _, err := fmt.Sscanf(resp.Captcha, "%d %s %d", &a, &op, &b); err != nil {
		t.Fatalf("unparseable captcha %q: %v", resp.Captcha, err)
	}
	if op == "+" {
		return strconv.Itoa(a + b)
	}
	return strconv.Itoa(a - b)
}

func TestRegisterActivateLoginFlow(t *testing.T) {
	setupTestDB(t)
	r := newAuthRouter()
	s := &session{t: t, r: r}

	// Register with a solved captcha.
	w := s.do("POST", "/api/register", gin.H{
		"username": "talaba",
		"email":    "talaba@example.com",
		"password": "parol123",
		"language": "uz",
		"captcha":  solveCaptcha(t, s),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: want 201, got %d: %s", w.Code, w.Body.String())
	}

	// Login is gated until the account is activated.
	w = s.do("POST", "/api/login", gin.H{
		"email":    "talaba@example.com",
		"password": "parol123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login before activation: want 401, got %d", w.Code)
	}

	// The code from the welcome email; read it from the store like the
	// mail template does.
	var user models.User
	if err := db.DB.Where("email = ?", "talaba@example.com").First(&user).Error; err != nil {
		t.Fatalf("registered user missing: %v", err)
	}
	if len(user.VerifyCode) != 6 {
		t.Fatalf("want a 6-digit activation code, got %q", user.VerifyCode)
	}

	// The SPA submits the code as a JSON POST.
	w = s.do("POST", "/api/activate", gin.H{
		"email": "talaba@example.com",
		"code":  user.VerifyCode,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("activate: want 200, got %d: %s", w.Code, w.Body.String())
	}

	w = s.do("POST", "/api/login", gin.H{
		"email":    "talaba@example.com",
		"password": "parol123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login after activation: want 200, got %d: %s", w.Code, w.Body.String())
	}

	// The session cookie now carries a signed-in user.
	w = s.do("GET", "/api/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: want 200, got %d", w.Code)
	}
	var me struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("bad me response: %v", err)
	}
	if me.User.Username != "talaba" || !me.User.IsActivated {
		t.Errorf("unexpected session user: %+v", me.User)
	}
}

func TestRegisterRejectsWrongCaptcha(t *testing.T) {
	setupTestDB(t)
	r := newAuthRouter()
	s := &session{t: t, r: r}

	solveCaptcha(t, s)
	w := s.do("POST", "/api/register", gin.H{
		"username": "bot",
		"email":    "bot@example.com",
		"password": "parol123",
		"captcha":  "not-a-number",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("no user may be created, found %d", count)
	}
}

func TestActivateRejectsWrongCode(t *testing.T) {
	setupTestDB(t)
	r := newAuthRouter()
	s := &session{t: t, r: r}

	w := s.do("POST", "/api/register", gin.H{
		"username": "talaba",
		"email":    "talaba@example.com",
		"password": "parol123",
		"captcha":  solveCaptcha(t, s),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	w = s.do("POST", "/api/activate", gin.H{
		"email": "talaba@example.com",
		"code":  "0000000",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong code: want 400, got %d", w.Code)
	}

	var user models.User
	db.DB.Where("email = ?", "talaba@example.com").First(&user)
	if user.IsActivated {
		t.Error("account must stay inactive after a wrong code")
	}
}
