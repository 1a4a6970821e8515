package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"device-ingest/pkg/event"
)

// newMockDB creates a sqlmock database with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func sampleRow() Row {
	return Row{
		EventID:            "e1",
		DeviceID:           "22110",
		Timestamp:          "2024-03-05T14:22:00Z",
		Date:               "2024-03-05",
		Hour:               "14:22",
		StateCurrent:       "Execute",
		CurMachSpeed:       54.5,
		MachSpeed:          60.0,
		ProdProcessedCount: 1234.0,
		PerMinute: event.PerMinuteStats{
			Minutes: 1.0, First: "14:21", Last: "14:22", Total: 60.0,
			Empty: 1.0, OK: 58.0, Returns: 0.0, Waste: 1.0,
			Double: 0.0, Bellyback: 0.0, Head: 0.0, Misc: 0.0,
			TotalFPM: 60.0, DbgTotal: 60.0,
		},
		Percent: event.PercentStats{
			Minutes: 1.0, Total: 100.0, Empty: 1.7, OK: 96.7,
			Returns: 0.0, Waste: 1.7, Double: 0.0, Bellyback: 0.0,
			Head: 0.0, Misc: 0.0,
		},
		EventTime: "2024-03-05T14:22:05Z",
	}
}

func TestInsertRowBindsAllColumns(t *testing.T) {
	db, mock := newMockDB(t)
	store := &PostgresStore{db: db}

	mock.ExpectExec("INSERT INTO device_data").
		WithArgs(
			"e1", "22110", "2024-03-05T14:22:00Z", "2024-03-05", "14:22",
			"Execute", 54.5, 60.0, 1234.0,
			1.0, "14:21", "14:22", 60.0, 1.0, 58.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 60.0, 60.0,
			1.0, 100.0, 1.7, 96.7, 0.0, 1.7, 0.0, 0.0, 0.0, 0.0,
			"2024-03-05T14:22:05Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.InsertRow(context.Background(), sampleRow()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInsertRowMissingFieldsBindNull(t *testing.T) {
	db, mock := newMockDB(t)
	store := &PostgresStore{db: db}

	row := Row{
		EventID:   "e2",
		DeviceID:  "22110",
		Timestamp: "2024-01-01T00:05:00Z",
		Date:      "2024-01-01",
		Hour:      "00:05",
		EventTime: "2024-01-01T00:05:02Z",
	}

	mock.ExpectExec("INSERT INTO device_data").
		WithArgs(
			"e2", "22110", "2024-01-01T00:05:00Z", "2024-01-01", "00:05",
			nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
			"2024-01-01T00:05:02Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.InsertRow(context.Background(), row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Redelivered events append a second identical row; id carries no unique
// constraint.
func TestInsertRowNoDedup(t *testing.T) {
	db, mock := newMockDB(t)
	store := &PostgresStore{db: db}

	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO device_data").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	for i := 0; i < 2; i++ {
		if err := store.InsertRow(context.Background(), sampleRow()); err != nil {
			t.Fatalf("delivery %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestInsertRowPropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	store := &PostgresStore{db: db}

	mock.ExpectExec("INSERT INTO device_data").
		WillReturnError(sql.ErrConnDone)

	if err := store.InsertRow(context.Background(), sampleRow()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRowValuesOrder(t *testing.T) {
	vals := sampleRow().values()
	if len(vals) != 34 {
		t.Fatalf("values() returned %d parameters, want 34", len(vals))
	}
	if vals[0] != "e1" || vals[1] != "22110" || vals[33] != "2024-03-05T14:22:05Z" {
		t.Errorf("values out of order: first=%v second=%v last=%v", vals[0], vals[1], vals[33])
	}
}
