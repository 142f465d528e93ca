// Package migration runs versioned schema migrations and records which ones
// have been applied in the schema_migrations table.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20250101000000_create_franchises_table", &CreateFranchisesTable{})
//	}
//
// and are applied in batches from the CLI:
//
//	franchise migrate
//	franchise migrate:rollback
package migration

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/pkg/logger"
)

// Migration is implemented by every schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type registered struct {
	name string
	m    Migration
}

var (
	registryMu sync.Mutex
	registry   []registered
)

// Register adds a migration to the global registry. Names are
// timestamp-prefixed so they sort chronologically.
func Register(name string, m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registered{name: name, m: m})
}

func registeredMigrations() []registered {
	registryMu.Lock()
	defer registryMu.Unlock()

	out := append([]registered(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ErrNoMigrations is returned by Run when nothing has been registered.
var ErrNoMigrations = errors.New("no migrations registered")

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) applied() (map[string]migrationRecord, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, fmt.Errorf("migration: load applied: %w", err)
	}
	out := make(map[string]migrationRecord, len(ran))
	for _, rec := range ran {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run applies every pending migration as one batch and returns the names
// that were applied.
func (r *Runner) Run() ([]string, error) {
	all := registeredMigrations()
	if len(all) == 0 {
		return nil, ErrNoMigrations
	}
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	done, err := r.applied()
	if err != nil {
		return nil, err
	}

	batch, err := r.lastBatch()
	if err != nil {
		return nil, err
	}
	batch++

	var ran []string
	for _, reg := range all {
		if _, ok := done[reg.name]; ok {
			continue
		}

		logger.Info("migration: running", zap.String("name", reg.name), zap.Int("batch", batch))
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", reg.name, err)
			}
			if err := tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", reg.name, err)
			}
			return nil
		})
		if err != nil {
			return ran, err
		}
		ran = append(ran, reg.name)
	}

	logger.Info("migration: done", zap.Int("ran", len(ran)), zap.Int("batch", batch))
	return ran, nil
}

// Rollback reverses every migration of the most recent batch, newest first,
// and returns the names that were rolled back.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	batch, err := r.lastBatch()
	if err != nil || batch == 0 {
		return nil, err
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration)
	for _, reg := range registeredMigrations() {
		byName[reg.name] = reg.m
	}

	var rolled []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return rolled, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", zap.String("name", rec.Name))
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("migration: %s down: %w", rec.Name, err)
			}
			return tx.Delete(&migrationRecord{}, rec.ID).Error
		})
		if err != nil {
			return rolled, err
		}
		rolled = append(rolled, rec.Name)
	}
	return rolled, nil
}

// Status lists every registered migration and whether it has been applied.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	done, err := r.applied()
	if err != nil {
		return nil, err
	}

	all := registeredMigrations()
	out := make([]Status, 0, len(all))
	for _, reg := range all {
		rec, ok := done[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Max *int }
	if err := r.db.Model(&migrationRecord{}).Select("MAX(batch) AS max").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	if last.Max == nil {
		return 0, nil
	}
	return *last.Max, nil
}
