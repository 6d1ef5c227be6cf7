package activity

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

type gormActivityRepository struct {
	db *gorm.DB
}

func NewGormActivityRepository(db *gorm.DB) ActivityRepository {
	return &gormActivityRepository{db: db}
}

func (r *gormActivityRepository) Append(ctx context.Context, record *domain.ActivityRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Printf("[ActivityRepository] Database error appending activity for user %s: %v", record.UserID, err)
		return domain.Wrap(domain.KindInternal, "database error appending activity", err)
	}
	return nil
}

func (r *gormActivityRepository) FindByUserID(ctx context.Context, userID string) ([]domain.ActivityRecord, error) {
	records := []domain.ActivityRecord{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&records).Error
	if err != nil {
		log.Printf("[ActivityRepository] Database error listing activities for user %s: %v", userID, err)
		return nil, domain.Wrap(domain.KindInternal, "database error listing activities", err)
	}
	return records, nil
}

func (r *gormActivityRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ActivityRecord{}).Count(&total).Error; err != nil {
		return 0, domain.Wrap(domain.KindInternal, "database error counting activities", err)
	}
	return total, nil
}
