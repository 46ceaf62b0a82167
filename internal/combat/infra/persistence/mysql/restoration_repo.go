package mysql

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type RestorationRepo struct {
	db *gorm.DB
}

func NewRestorationRepo(db *gorm.DB) *RestorationRepo {
	return &RestorationRepo{db: db}
}

func (r *RestorationRepo) Create(ctx context.Context, rs domain.RestorationStatus) error {
	row := model.RestorationFromDomain(rs)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *RestorationRepo) FindActive(ctx context.Context, kingdomID string, now time.Time) (*domain.RestorationStatus, error) {
	var row model.RestorationStatus
	err := r.db.WithContext(ctx).
		Where("kingdom_id = ? AND end_time > ?", kingdomID, now).
		Order("end_time DESC").
		First(&row).Error
	switch {
	case err == nil:
		rs := model.RestorationToDomain(row)
		return &rs, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrRestorationNotFound.WithData("kingdom_id", kingdomID)
	default:
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
}
