package persist

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateSnapshot is the single-table schema behind the embedded adapter: one
// row per slot, whole snapshot as payload, overwritten on every save.
type StateSnapshot struct {
	Slot      string    `gorm:"column:slot;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StateSnapshot) TableName() string {
	return "state_snapshots"
}

// Gorm persists snapshots in an embedded database (sqlite in production
// wiring). The table is migrated on construction.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) (*Gorm, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gorm connection is required")
	}
	if err := db.AutoMigrate(&StateSnapshot{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "migrate state_snapshots")
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Load(ctx context.Context, slot string) (string, bool, error) {
	var record StateSnapshot
	err := g.db.WithContext(ctx).First(&record, "slot = ?", slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "load snapshot")
	}
	return record.Payload, true, nil
}

func (g *Gorm) Save(ctx context.Context, slot, payload string) error {
	record := StateSnapshot{Slot: slot, Payload: payload, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "save snapshot")
	}
	return nil
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
