package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forskull/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestFailUnwrapsServiceErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{services.ErrInsufficientPoints, http.StatusPaymentRequired},
		{fmt.Errorf("создание вопроса: %w", services.ErrInsufficientPoints), http.StatusPaymentRequired},
		{fmt.Errorf("ответ: %w", services.ErrAnswerLimitReached), http.StatusConflict},
		{fmt.Errorf("доступ: %w", services.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("поиск: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{fmt.Errorf("непредвиденно"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		fail(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("fail(%v): want %d, got %d", tc.err, tc.want, w.Code)
		}
	}
}
