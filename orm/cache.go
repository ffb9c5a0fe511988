package orm

import (
	"time"

	"gorm.io/gorm"
)

// ResponseCache stores model replies keyed by prompt hash so repeated
// chat questions can be answered without another model call. Never
// used for calculator answers: the random-matrix path is documented
// non-deterministic and caching would hide that.
type ResponseCache struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// GetCachedResponse retrieves a valid cache entry
func GetCachedResponse(db *gorm.DB, key string) (*ResponseCache, error) {
	var entry ResponseCache
	// Check for existence and expiry
	err := db.Where("key = ? AND expires_at > ?", key, time.Now()).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetCachedResponse upserts a cache entry
func SetCachedResponse(db *gorm.DB, key, value string, ttl time.Duration) error {
	entry := ResponseCache{
		Key:       key,
		Value:     value,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	// Upsert (On Conflict Do Update)
	return db.Save(&entry).Error
}

// CleanupCache removes expired entries
func CleanupCache(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&ResponseCache{}).Error
}
