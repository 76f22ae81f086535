package repository

import (
	"context"

	"folio/internal/models"

	"gorm.io/gorm"
)

// SubscriberRepository defines the interface for newsletter subscriber storage.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *models.Subscriber) error
	Count(ctx context.Context) (int64, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("Email already subscribed")
		}
		return models.NewUpstreamError(err)
	}
	return nil
}

func (r *subscriberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Subscriber{}).Count(&n).Error; err != nil {
		return 0, models.NewUpstreamError(err)
	}
	return n, nil
}
