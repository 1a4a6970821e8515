package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"device-ingest/pkg/event"
)

// Row is one flattened device_data record: event identity, machine state,
// the derived date/hour strings, and both camera statistics blocks.
type Row struct {
	EventID            string
	DeviceID           string
	Timestamp          string
	Date               string
	Hour               string
	StateCurrent       any
	CurMachSpeed       any
	MachSpeed          any
	ProdProcessedCount any
	PerMinute          event.PerMinuteStats
	Percent            event.PercentStats
	EventTime          string
}

// values flattens the row into the 34 insert parameters, in column order.
// Loosely typed fields left nil bind SQL NULL.
func (r Row) values() []any {
	return []any{
		r.EventID, r.DeviceID, r.Timestamp, r.Date, r.Hour,
		r.StateCurrent, r.CurMachSpeed, r.MachSpeed, r.ProdProcessedCount,
		r.PerMinute.Minutes, r.PerMinute.First, r.PerMinute.Last,
		r.PerMinute.Total, r.PerMinute.Empty, r.PerMinute.OK,
		r.PerMinute.Returns, r.PerMinute.Waste, r.PerMinute.Double,
		r.PerMinute.Bellyback, r.PerMinute.Head, r.PerMinute.Misc,
		r.PerMinute.TotalFPM, r.PerMinute.DbgTotal,
		r.Percent.Minutes, r.Percent.Total, r.Percent.Empty, r.Percent.OK,
		r.Percent.Returns, r.Percent.Waste, r.Percent.Double,
		r.Percent.Bellyback, r.Percent.Head, r.Percent.Misc,
		r.EventTime,
	}
}

const insertDeviceData = `
	INSERT INTO device_data (
		id, deviceId, timestamp,
		date, hour, state_current, cur_mach_speed,
		mach_speed, prod_processed_count, cam_statistics_per_minute_minutes,
		cam_statistics_first, cam_statistics_last, cam_statistics_total,
		cam_statistics_empty, cam_statistics_ok, cam_statistics_returns,
		cam_statistics_waste, cam_statistics_double, cam_statistics_bellyback,
		cam_statistics_head, cam_statistics_misc, cam_statistics_total_fpm,
		cam_statistics_dbg_total, cam_statistics_percent_minutes,
		cam_statistics_percent_total, cam_statistics_percent_empty,
		cam_statistics_percent_ok, cam_statistics_percent_returns,
		cam_statistics_percent_waste, cam_statistics_percent_double,
		cam_statistics_percent_bellyback, cam_statistics_percent_head,
		cam_statistics_percent_misc, event_time
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32, $33, $34
	)`

// PostgresStore inserts device_data rows. Inserts are plain appends: the
// table has no unique key on id, so a redelivered event produces a second
// row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) InsertRow(ctx context.Context, row Row) error {
	if _, err := p.db.ExecContext(ctx, insertDeviceData, row.values()...); err != nil {
		return fmt.Errorf("insert device_data row for event %s: %w", row.EventID, err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
