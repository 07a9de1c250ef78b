package services

import (
	"testing"

	"forskull/internal/db"
	"forskull/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps the global connection for an in-memory sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb
}

func newUser(t *testing.T, username string, points int) *models.User {
	t.Helper()

	user := models.User{
		Username:    username,
		DisplayName: username,
		Email:       username + "@example.com",
		Password:    "x",
		Points:      points,
		Role:        models.RoleUser,
		IsActivated: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func newQuestion(t *testing.T, author *models.User, bounty int) *models.Question {
	t.Helper()

	q, err := CreateQuestion(author, CreateQuestionInput{
		Title:    "Как решить квадратное уравнение?",
		Content:  "Объясните дискриминант.",
		Category: "math",
		Points:   bounty,
		Language: "ru",
	})
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	return q
}

func userPoints(t *testing.T, userID uint) int {
	t.Helper()

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		t.Fatalf("failed to reload user %d: %v", userID, err)
	}
	return user.Points
}
