package mysql

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type WarDeclarationRepo struct {
	db *gorm.DB
}

func NewWarDeclarationRepo(db *gorm.DB) *WarDeclarationRepo {
	return &WarDeclarationRepo{db: db}
}

func (r *WarDeclarationRepo) FindActive(ctx context.Context, attackerID, defenderID string) (*domain.WarDeclaration, error) {
	var row model.WarDeclaration
	err := r.db.WithContext(ctx).
		Where("attacker_id = ? AND defender_id = ? AND status = ?", attackerID, defenderID, string(domain.WarActive)).
		Order("id DESC").
		First(&row).Error
	switch {
	case err == nil:
		w := model.WarDeclarationToDomain(row)
		return &w, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrWarDeclarationNotFound
	default:
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
}

func (r *WarDeclarationRepo) IncrementAttackCount(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.WarDeclaration{}).
		Where("id = ? AND status = ?", id, string(domain.WarActive)).
		Update("attack_count", gorm.Expr("attack_count + 1"))
	if res.Error != nil {
		return domain.ErrSystemUnavailable.WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrWarDeclarationNotFound
	}
	return nil
}
