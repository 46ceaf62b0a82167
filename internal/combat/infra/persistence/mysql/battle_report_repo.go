package mysql

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type BattleReportRepo struct {
	db *gorm.DB
}

func NewBattleReportRepo(db *gorm.DB) *BattleReportRepo {
	return &BattleReportRepo{db: db}
}

func (r *BattleReportRepo) Create(ctx context.Context, report domain.BattleReport) error {
	row := model.BattleReportFromDomain(report)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *BattleReportRepo) ListByPair(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error) {
	var rows []model.BattleReport
	q := r.db.WithContext(ctx).
		Where("attacker_id = ? AND defender_id = ?", attackerID, defenderID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]domain.BattleReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.BattleReportToDomain(row))
	}
	return out, nil
}

// CountByPair since 为零值时统计全部历史。
func (r *BattleReportRepo) CountByPair(ctx context.Context, attackerID, defenderID string, since time.Time) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).
		Model(&model.BattleReport{}).
		Where("attacker_id = ? AND defender_id = ?", attackerID, defenderID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, domain.ErrSystemUnavailable.WithCause(err)
	}
	return n, nil
}
