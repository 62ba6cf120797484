package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmejia/opsledger-api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository caches computed dashboard stats with a TTL
type DashboardRepository interface {
	GetCache(ctx context.Context, key string) (*models.DashboardCache, error)
	SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	InvalidateCache(ctx context.Context, key string) error
	CleanExpiredCache(ctx context.Context) error
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetCache(ctx context.Context, key string) (*models.DashboardCache, error) {
	var cache models.DashboardCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Where("expires_at > ?", time.Now()).
		First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *dashboardRepository) SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(ttl)

	// Upsert strategy
	var existing models.DashboardCache
	err = r.db.WithContext(ctx).Where("cache_key = ?", key).First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"data":       jsonData,
			"expires_at": expiresAt,
			"updated_at": time.Now(),
		}).Error
	}

	cache := models.DashboardCache{
		CacheKey:  key,
		Data:      jsonData,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(&cache).Error
}

func (r *dashboardRepository) InvalidateCache(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Delete(&models.DashboardCache{}).Error
}

func (r *dashboardRepository) CleanExpiredCache(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.DashboardCache{}).Error
}
