package mongodb

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/infra/persistence/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultBattleReportCollectionName = "battle_report"

var errNilCollection = errors.New("mongodb battle_report collection is nil")

// BattleReportRepo 战报只追加不修改，适合单独放在文档库。
type BattleReportRepo struct {
	coll *mongo.Collection
}

func NewBattleReportRepo(db *mongo.Database) *BattleReportRepo {
	if db == nil {
		return &BattleReportRepo{}
	}
	return &BattleReportRepo{coll: db.Collection(defaultBattleReportCollectionName)}
}

// EnsureIndexes 建立按进攻方/防守方/时间的复合索引，ListByPair 和 CountByPair 都走这个索引。
func (r *BattleReportRepo) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "attacker_id", Value: 1},
			{Key: "defender_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_pair_created"),
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (r *BattleReportRepo) Create(ctx context.Context, report domain.BattleReport) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	if _, err := r.coll.InsertOne(ctx, model.BattleReportToDoc(report)); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err).WithData("report_id", report.ID)
	}
	return nil
}

func (r *BattleReportRepo) ListByPair(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, pairFilter(attackerID, defenderID, time.Time{}), opts)
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	var docs []model.BattleReportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]domain.BattleReport, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.BattleReportDocToDomain(d))
	}
	return out, nil
}

func (r *BattleReportRepo) CountByPair(ctx context.Context, attackerID, defenderID string, since time.Time) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	n, err := r.coll.CountDocuments(ctx, pairFilter(attackerID, defenderID, since))
	if err != nil {
		return 0, domain.ErrSystemUnavailable.WithCause(err)
	}
	return n, nil
}

func pairFilter(attackerID, defenderID string, since time.Time) bson.M {
	f := bson.M{"attacker_id": attackerID, "defender_id": defenderID}
	if !since.IsZero() {
		f["created_at"] = bson.M{"$gte": since}
	}
	return f
}
