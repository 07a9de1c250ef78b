package services

import (
	"fmt"
	"sync"
	"time"

	"forskull/internal/db"
	"forskull/internal/models"
	"forskull/internal/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CounterService keeps the denormalized likes_count/answers_count columns
// on questions in step with the vote and answer tables. The columns exist
// only for sorting; every API response counts live rows. Updates are queued
// per mutation and the whole table is reconciled on a nightly cron, so the
// invariant "counter == count(rows)" holds at quiescent points.
type CounterService struct {
	queue   chan uint
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	counterService *CounterService
	once           sync.Once
)

func GetCounterService() *CounterService {
	once.Do(func() {
		counterService = &CounterService{
			queue:   make(chan uint, 1000),
			pending: make(map[uint]bool),
		}
		go counterService.worker()
	})
	return counterService
}

// ScheduleUpdate queues a question for a counter refresh, deduplicating
// requests that arrive before the worker gets to it. The cached feed page
// is dropped here too, so answer and vote mutations reach the feed without
// waiting out the cache TTL.
func (s *CounterService) ScheduleUpdate(questionID uint) {
	utils.GetCache().Delete(FeedCacheKey(1))

	s.mu.Lock()
	if s.pending[questionID] {
		s.mu.Unlock()
		return
	}
	s.pending[questionID] = true
	s.mu.Unlock()

	select {
	case s.queue <- questionID:
	default:
		s.mu.Lock()
		delete(s.pending, questionID)
		s.mu.Unlock()
		logrus.Warnf("counter queue full, skipping question %d", questionID)
	}
}

func (s *CounterService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case questionID := <-s.queue:
			batch = append(batch, questionID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *CounterService) processBatch(questionIDs []uint) {
	for _, questionID := range questionIDs {
		s.refreshCounters(questionID)

		s.mu.Lock()
		delete(s.pending, questionID)
		s.mu.Unlock()
	}
}

func (s *CounterService) refreshCounters(questionID uint) {
	var likes int64
	db.DB.Model(&models.Vote{}).
		Where("question_id = ? AND value = 1", questionID).
		Count(&likes)

	var answers int64
	db.DB.Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&answers)

	if err := db.DB.Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumns(map[string]interface{}{
			"likes_count":   likes,
			"answers_count": answers,
		}).Error; err != nil {
		logrus.Errorf("failed to refresh counters for question %d: %v", questionID, err)
	}
}

// ReconcileAll recomputes counters for every question and logs how many
// rows had drifted.
func (s *CounterService) ReconcileAll() {
	var ids []uint
	if err := db.DB.Model(&models.Question{}).Pluck("id", &ids).Error; err != nil {
		logrus.Errorf("counter reconciliation failed to list questions: %v", err)
		return
	}

	drifted := 0
	for _, id := range ids {
		var q models.Question
		if err := db.DB.Select("id, likes_count, answers_count").First(&q, id).Error; err != nil {
			continue
		}
		var likes, answers int64
		db.DB.Model(&models.Vote{}).Where("question_id = ? AND value = 1", id).Count(&likes)
		db.DB.Model(&models.Answer{}).Where("question_id = ?", id).Count(&answers)
		if int(likes) != q.LikesCount || int(answers) != q.AnswersCount {
			drifted++
			s.refreshCounters(id)
		}
	}
	logrus.Infof("counter reconciliation: %d questions checked, %d corrected", len(ids), drifted)
}

// StartReconciler schedules the nightly full reconciliation.
func (s *CounterService) StartReconciler(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.ReconcileAll); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// FeedCacheKey is shared by the feed handler (read/set) and the mutation
// paths (invalidation), so the two sides cannot drift apart.
func FeedCacheKey(page int) string {
	return fmt.Sprintf("question:feed:page:%d", page)
}
