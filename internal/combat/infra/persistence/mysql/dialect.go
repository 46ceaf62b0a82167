package mysql

import (
	"KingdomWar/internal/combat/infra/persistence/model"
	"fmt"

	"gorm.io/gorm"
)

// sqlite 没有 GREATEST/LEAST，多参数 MAX/MIN 语义相同。
func clampFuncs(db *gorm.DB) (greatest, least string) {
	if db.Dialector.Name() == "sqlite" {
		return "MAX", "MIN"
	}
	return "GREATEST", "LEAST"
}

// floorAtZero 生成 col = GREATEST(col + ?, 0)。
func floorAtZero(db *gorm.DB, col string, delta int64) any {
	g, _ := clampFuncs(db)
	return gorm.Expr(fmt.Sprintf("%s(%s + ?, 0)", g, col), delta)
}

// floorLand 土地下限：不会把高于最低线的土地压到最低线以下，已经低于的不再变小。
func floorLand(db *gorm.DB, delta int64, min int64) any {
	g, l := clampFuncs(db)
	return gorm.Expr(fmt.Sprintf("%s(land + ?, %s(land, ?))", g, l), delta, min)
}

// AutoMigrate 建表，仅在 storage.auto_migrate 打开时调用。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Kingdom{},
		&model.KingdomUnit{},
		&model.Territory{},
		&model.BattleReport{},
		&model.WarDeclaration{},
		&model.RestorationStatus{},
	)
}
