// Public domain.

// Package lcstore writes result tables to a SQLite database.
//
// Tables are detections, magstats, objstats and dmdt.  NaN is stored as
// NULL and a degenerate correction as 100, the serialized forms of the two
// non-valid correction statuses.  Saving a key that already exists
// replaces the row, so reprocessing an object updates it in place.
package lcstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/soniakeys/lccorr/internal/lcdata"
)

const batchSize = 500

// Store is a results database.
type Store struct {
	DB  *gorm.DB
	log *slog.Logger
}

// Open opens or creates the database at path and migrates the schema.
// Path ":memory:" gives a private in-memory database.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &gormLog{log: log, level: gormlogger.Warn},
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if path == ":memory:" {
		// each pooled connection would see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Detection{}, &MagStat{}, &ObjStat{}, &DmDt{}); err != nil {
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	log.Debug("store open", "path", path)
	return &Store{DB: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save writes the tables in one transaction.
func (s *Store) Save(ctx context.Context, t *lcdata.Tables) error {
	dets := make([]Detection, len(t.Corrected))
	for i := range t.Corrected {
		dets[i] = detectionRow(&t.Corrected[i])
	}
	mags := make([]MagStat, len(t.MagStats))
	for i := range t.MagStats {
		mags[i] = magStatRow(&t.MagStats[i])
	}
	objs := make([]ObjStat, len(t.ObjStats))
	for i := range t.ObjStats {
		objs[i] = objStatRow(&t.ObjStats[i])
	}
	dmdt := make([]DmDt, len(t.DmDt))
	for i := range t.DmDt {
		dmdt[i] = dmdtRow(&t.DmDt[i])
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, dets); err != nil {
			return fmt.Errorf("detections: %w", err)
		}
		if err := upsert(tx, mags); err != nil {
			return fmt.Errorf("magstats: %w", err)
		}
		if err := upsert(tx, objs); err != nil {
			return fmt.Errorf("objstats: %w", err)
		}
		if err := upsert(tx, dmdt); err != nil {
			return fmt.Errorf("dmdt: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("saved",
		"detections", len(dets),
		"magstats", len(mags),
		"objstats", len(objs),
		"dmdt", len(dmdt))
	return nil
}

func upsert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, batchSize).Error
}

// Detections returns the stored detections of an object by band, then
// candid.
func (s *Store) Detections(ctx context.Context, oid string) ([]Detection, error) {
	var r []Detection
	err := s.DB.WithContext(ctx).Where("oid = ?", oid).Order("fid, candid").Find(&r).Error
	return r, err
}

// MagStats returns the stored magstats of an object by band.
func (s *Store) MagStats(ctx context.Context, oid string) ([]MagStat, error) {
	var r []MagStat
	err := s.DB.WithContext(ctx).Where("oid = ?", oid).Order("fid").Find(&r).Error
	return r, err
}

// ObjStats returns the stored objstats of an object.  The error wraps
// gorm.ErrRecordNotFound if there is none.
func (s *Store) ObjStats(ctx context.Context, oid string) (*ObjStat, error) {
	var r ObjStat
	if err := s.DB.WithContext(ctx).First(&r, "oid = ?", oid).Error; err != nil {
		return nil, fmt.Errorf("objstats %s: %w", oid, err)
	}
	return &r, nil
}

// DmDt returns the stored dm/dt rows of an object by band.
func (s *Store) DmDt(ctx context.Context, oid string) ([]DmDt, error) {
	var r []DmDt
	err := s.DB.WithContext(ctx).Where("oid = ?", oid).Order("fid").Find(&r).Error
	return r, err
}
