package middleware

import (
	"net/http"

	"forskull/internal/db"
	"forskull/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// LoadUser retrieves the user from the session and sets it on the context,
// together with the unread notification count.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)

				var count int64
				db.DB.Model(&models.Notification{}).
					Where("user_id = ? AND is_read = ?", user.ID, false).
					Count(&count)
				c.Set(UnreadCountKey, count)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a signed-in user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Необходимо войти в систему"})
			return
		}
		c.Next()
	}
}

// NotBlocked stops blocked users from any write action; reads stay open.
func NotBlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Необходимо войти в систему"})
			return
		}
		if u.(*models.User).IsBlocked() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Ваш аккаунт заблокирован"})
			return
		}
		c.Next()
	}
}

// AdminRequired allows admins only.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists || u.(*models.User).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав"})
			return
		}
		c.Next()
	}
}
