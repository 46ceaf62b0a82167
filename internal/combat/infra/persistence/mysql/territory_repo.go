package mysql

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"

	"gorm.io/gorm"
)

type TerritoryRepo struct {
	db *gorm.DB
}

func NewTerritoryRepo(db *gorm.DB) *TerritoryRepo {
	return &TerritoryRepo{db: db}
}

func (r *TerritoryRepo) ListByOwner(ctx context.Context, kingdomID string) ([]domain.Territory, error) {
	var rows []model.Territory
	err := r.db.WithContext(ctx).
		Where("owner_kingdom_id = ?", kingdomID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]domain.Territory, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.TerritoryToDomain(row))
	}
	return out, nil
}

func (r *TerritoryRepo) UpdateOwner(ctx context.Context, territoryID int64, newOwnerID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Territory{}).
		Where("id = ?", territoryID).
		Update("owner_kingdom_id", newOwnerID).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}
