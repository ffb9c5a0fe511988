package orm

import (
	"time"

	"gorm.io/gorm"
)

// ConversationThread tracks an active hosted-assistant thread so a
// conversation can continue across client calls and server restarts.
type ConversationThread struct {
	ThreadID     string `gorm:"primaryKey"`
	AgentKey     string `gorm:"index"`
	AssistantID  string
	StartedAt    time.Time
	LastActiveAt time.Time `gorm:"index"`
	MessageCount int
}

// TouchThread upserts the thread record and bumps its counters.
func TouchThread(db *gorm.DB, threadID, agentKey, assistantID string) error {
	now := time.Now()
	var thread ConversationThread
	err := db.Where("thread_id = ?", threadID).First(&thread).Error
	if err == gorm.ErrRecordNotFound {
		thread = ConversationThread{
			ThreadID:     threadID,
			AgentKey:     agentKey,
			AssistantID:  assistantID,
			StartedAt:    now,
			LastActiveAt: now,
			MessageCount: 1,
		}
		return db.Create(&thread).Error
	}
	if err != nil {
		return err
	}
	thread.LastActiveAt = now
	thread.MessageCount++
	return db.Save(&thread).Error
}

// GetThread fetches a thread record by ID.
func GetThread(db *gorm.DB, threadID string) (*ConversationThread, error) {
	var thread ConversationThread
	if err := db.Where("thread_id = ?", threadID).First(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListRecentThreads returns up to limit threads, most recent first.
func ListRecentThreads(db *gorm.DB, limit int) ([]ConversationThread, error) {
	var threads []ConversationThread
	if err := db.Order("last_active_at desc").Limit(limit).Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}
