package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

const defaultBatchSize = 200

// EventRecord is the persisted form of an event.
type EventRecord struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"index"`
	Scenario string `gorm:"index"`
	Seq      int

	Timestamp         time.Time
	Kind              string `gorm:"index"`
	User              string
	Device            string
	Success           bool
	Method            string
	Posture           string
	IP                string
	Resource          string
	Decision          string
	Reason            string
	AttackType        string `gorm:"index"`
	AttackPhase       string
	AttemptedPassword string
	Filename          string
}

func (EventRecord) TableName() string {
	return "events"
}

func newEventRecord(runID, scenario string, seq int, e core.Event) EventRecord {
	return EventRecord{
		RunID:             runID,
		Scenario:          scenario,
		Seq:               seq,
		Timestamp:         e.Timestamp,
		Kind:              string(e.Kind),
		User:              e.User,
		Device:            e.Device,
		Success:           e.Success,
		Method:            string(e.Method),
		Posture:           e.Posture,
		IP:                e.IP,
		Resource:          e.Resource,
		Decision:          string(e.Decision),
		Reason:            e.Reason,
		AttackType:        string(e.AttackType),
		AttackPhase:       string(e.AttackPhase),
		AttemptedPassword: e.AttemptedPassword,
		Filename:          e.Filename,
	}
}

func (r EventRecord) Event() core.Event {
	return core.Event{
		Timestamp:         r.Timestamp.UTC(),
		Kind:              core.EventKind(r.Kind),
		User:              r.User,
		Device:            r.Device,
		Success:           r.Success,
		Method:            core.AuthMethod(r.Method),
		Posture:           r.Posture,
		IP:                r.IP,
		Resource:          r.Resource,
		Decision:          core.Decision(r.Decision),
		Reason:            r.Reason,
		AttackType:        core.AttackType(r.AttackType),
		AttackPhase:       core.AttackPhase(r.AttackPhase),
		AttemptedPassword: r.AttemptedPassword,
		Filename:          r.Filename,
	}
}

// OpenSQLite opens (or creates) an event database and migrates its schema.
// Use "file:name?mode=memory&cache=shared" for an in-memory database.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&EventRecord{}); err != nil {
		return nil, fmt.Errorf("migrating event schema: %w", err)
	}
	return db, nil
}

// CloseSQLite closes the connection pool of db.
func CloseSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ core.Sink = (*SQLiteSink)(nil)

// SQLiteSink stores the events of one scenario run in batches.
// Close flushes pending records but leaves the database open.
type SQLiteSink struct {
	mu        sync.Mutex
	db        *gorm.DB
	runID     string
	scenario  string
	seq       int
	batch     []EventRecord
	batchSize int
}

func NewSQLiteSink(db *gorm.DB, runID, scenario string) *SQLiteSink {
	return &SQLiteSink{
		db:        db,
		runID:     runID,
		scenario:  scenario,
		batchSize: defaultBatchSize,
	}
}

func (s *SQLiteSink) Write(event core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = append(s.batch, newEventRecord(s.runID, s.scenario, s.seq, event))
	s.seq++
	if len(s.batch) >= s.batchSize {
		return s.flush()
	}
	return nil
}

func (s *SQLiteSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flush()
}

func (s *SQLiteSink) flush() error {
	if len(s.batch) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(s.batch, defaultBatchSize).Error; err != nil {
		return fmt.Errorf("inserting events: %w", err)
	}
	s.batch = s.batch[:0]
	return nil
}

func (s *SQLiteSink) Close() error {
	return s.Flush()
}

// EventQuery selects stored events. Empty fields do not filter.
type EventQuery struct {
	RunID      string
	Scenario   string
	AttackOnly bool
	Limit      int
}

// QueryEvents returns stored events in write order.
func QueryEvents(ctx context.Context, db *gorm.DB, q EventQuery) ([]core.Event, error) {
	tx := db.WithContext(ctx).Model(&EventRecord{})
	if q.RunID != "" {
		tx = tx.Where("run_id = ?", q.RunID)
	}
	if q.Scenario != "" {
		tx = tx.Where("scenario = ?", q.Scenario)
	}
	if q.AttackOnly {
		tx = tx.Where("attack_type <> ''")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var records []EventRecord
	if err := tx.Order("run_id, scenario, seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	events := make([]core.Event, len(records))
	for i, r := range records {
		events[i] = r.Event()
	}
	return events, nil
}

// QueryScenarios returns the distinct scenario names stored for a run, sorted.
// An empty runID matches every run.
func QueryScenarios(ctx context.Context, db *gorm.DB, runID string) ([]string, error) {
	tx := db.WithContext(ctx).Model(&EventRecord{})
	if runID != "" {
		tx = tx.Where("run_id = ?", runID)
	}
	var names []string
	if err := tx.Distinct("scenario").Order("scenario").Pluck("scenario", &names).Error; err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	return names, nil
}
