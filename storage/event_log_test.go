package storage

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens gorm over a sqlmock connection with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}
	return db, mock
}

func TestAppendInsertsRecord(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewEventLogStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "event_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := store.Append("collection.item_added", 7, `{"user_id":7,"item_id":42}`)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
}

func TestAppendRejectsNonPositiveUserID(t *testing.T) {
	db, _ := newMockDB(t)
	store := NewEventLogStore(db)

	// No SQL expectations: the record must be rejected before any insert.
	for _, userID := range []int64{0, -5} {
		if err := store.Append("collection.item_added", userID, `{}`); err == nil {
			t.Errorf("expected error for user id %d", userID)
		}
	}
}

func TestListRecentScopesOrdersAndLimits(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewEventLogStore(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "event_type", "user_id", "payload_json", "created_at"}).
		AddRow(12, "collection.item_updated", 7, `{"user_id":7,"status":"playing"}`, now).
		AddRow(11, "collection.item_added", 7, `{"user_id":7,"item_id":42}`, now)

	// The query itself carries the contract: owner scoping, newest-first
	// order and the 50-record cap.
	mock.ExpectQuery(`SELECT \* FROM "event_logs" WHERE user_id = \$1 ORDER BY id desc LIMIT \$2`).
		WillReturnRows(rows)

	records, err := store.ListRecent(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != 12 || records[1].ID != 11 {
		t.Errorf("expected newest-first order, got ids %d, %d", records[0].ID, records[1].ID)
	}
	if records[0].EventType != "collection.item_updated" {
		t.Errorf("unexpected event type %q", records[0].EventType)
	}
	if records[0].UserID != 7 {
		t.Errorf("unexpected user id %d", records[0].UserID)
	}
}

func TestListRecentReturnsEmptySliceForQuietUser(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewEventLogStore(db)

	mock.ExpectQuery(`SELECT \* FROM "event_logs" WHERE user_id = \$1 ORDER BY id desc LIMIT \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "user_id", "payload_json", "created_at"}))

	records, err := store.ListRecent(8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
