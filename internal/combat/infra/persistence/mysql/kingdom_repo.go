package mysql

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type KingdomRepo struct {
	db *gorm.DB
}

func NewKingdomRepo(db *gorm.DB) *KingdomRepo {
	return &KingdomRepo{db: db}
}

func (r *KingdomRepo) WithTx(tx *gorm.DB) *KingdomRepo {
	return &KingdomRepo{db: tx}
}

func (r *KingdomRepo) Get(ctx context.Context, id string) (*domain.Kingdom, error) {
	var row model.Kingdom
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	default:
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}

	var units []model.KingdomUnit
	if err := r.db.WithContext(ctx).Where("kingdom_id = ?", id).Find(&units).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	return model.KingdomToDomain(row, units), nil
}

// Save 整体写入王国与兵种行，供初始化数据和测试夹具使用。
func (r *KingdomRepo) Save(ctx context.Context, k domain.Kingdom) error {
	row, units := model.KingdomFromDomain(k)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("kingdom_id = ?", k.ID).Delete(&model.KingdomUnit{}).Error; err != nil {
			return err
		}
		if len(units) == 0 {
			return nil
		}
		return tx.Create(&units).Error
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

// ApplyCasualties 每个兵种一条原子 UPDATE，数量不低于 0。
func (r *KingdomRepo) ApplyCasualties(ctx context.Context, id string, losses map[string]int64) error {
	for unitType, n := range losses {
		if n <= 0 {
			continue
		}
		err := r.db.WithContext(ctx).
			Model(&model.KingdomUnit{}).
			Where("kingdom_id = ? AND unit_type = ?", id, unitType).
			Update("count", floorAtZero(r.db, "count", -n)).Error
		if err != nil {
			return domain.ErrSystemUnavailable.WithCause(err)
		}
	}
	return nil
}

func (r *KingdomRepo) AdjustResources(ctx context.Context, id string, d domain.ResourceDelta) error {
	if d.IsZero() {
		return nil
	}
	updates := map[string]any{}
	if d.Gold != 0 {
		updates["gold"] = floorAtZero(r.db, "gold", d.Gold)
	}
	if d.Population != 0 {
		updates["population"] = floorAtZero(r.db, "population", d.Population)
	}
	if d.Mana != 0 {
		updates["mana"] = floorAtZero(r.db, "mana", d.Mana)
	}
	if d.Land != 0 {
		updates["land"] = floorLand(r.db, d.Land, domain.MinLand)
	}
	err := r.db.WithContext(ctx).
		Model(&model.Kingdom{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *KingdomRepo) DeductTurns(ctx context.Context, id string, n int64) error {
	if n <= 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Kingdom{}).
		Where("id = ?", id).
		Update("turns_balance", floorAtZero(r.db, "turns_balance", -n)).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}
