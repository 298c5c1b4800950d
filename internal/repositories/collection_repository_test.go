package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/moxuanli/frs/backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb, mock, sqlDB
}

func TestCreateCollectionItem(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	mock.ExpectQuery(`INSERT INTO "collection_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	item, err := models.NewCollectionItem(1, models.CollectionTypeFood, 42)
	if err != nil {
		t.Fatalf("NewCollectionItem: %v", err)
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", item.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	mock.ExpectQuery(`INSERT INTO "collection_items"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	item, err := models.NewCollectionItem(1, models.CollectionTypeFood, 42)
	if err != nil {
		t.Fatalf("NewCollectionItem: %v", err)
	}
	err = repo.Create(context.Background(), item)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestCreateMapsForeignKeyViolation(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	mock.ExpectQuery(`INSERT INTO "collection_items"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	item, err := models.NewCollectionItem(1, models.CollectionTypePost, 9)
	if err != nil {
		t.Fatalf("NewCollectionItem: %v", err)
	}
	err = repo.Create(context.Background(), item)
	if !errors.Is(err, ErrForeignKeyViolated) {
		t.Fatalf("expected ErrForeignKeyViolated, got %v", err)
	}
}

func TestCreateRefusesMalformedUnion(t *testing.T) {
	gdb, _, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	// Discriminant says FOOD but the post slot is populated; must be
	// refused before any SQL runs.
	postID := uint(7)
	err := repo.Create(context.Background(), &models.CollectionItem{
		UserID:   1,
		ItemType: models.CollectionTypeFood,
		PostID:   &postID,
	})
	if err == nil {
		t.Fatal("expected error for malformed collection item")
	}
}

func TestDeleteByUserKindTargetCounts(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	mock.ExpectExec(`DELETE FROM "collection_items"`).
		WithArgs(uint(1), models.CollectionTypeFood, uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := repo.DeleteByUserKindTarget(context.Background(), 1, models.CollectionTypeFood, 42)
	if err != nil {
		t.Fatalf("DeleteByUserKindTarget error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row removed, got %d", count)
	}

	// Deleting again removes nothing; caller sees the zero count.
	mock.ExpectExec(`DELETE FROM "collection_items"`).
		WithArgs(uint(1), models.CollectionTypeFood, uint(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err = repo.DeleteByUserKindTarget(context.Background(), 1, models.CollectionTypeFood, 42)
	if err != nil {
		t.Fatalf("DeleteByUserKindTarget error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows removed, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByUserFiltersByKind(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	foodID := uint(42)
	rows := sqlmock.NewRows([]string{"id", "user_id", "item_type", "post_id", "food_item_id", "restaurant_id", "created_at"}).
		AddRow(int64(3), int64(1), "FOOD", nil, int64(foodID), nil, time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM "collection_items" WHERE user_id = (.+) AND item_type = (.+) ORDER BY created_at DESC, id DESC`).
		WithArgs(uint(1), models.CollectionTypeFood, 10).
		WillReturnRows(rows)

	kind := models.CollectionTypeFood
	items, err := repo.ListByUser(context.Background(), 1, &kind, 0, 10)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ItemType != models.CollectionTypeFood || items[0].TargetID() != foodID {
		t.Fatalf("unexpected item %+v", items[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountByUser(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "collection_items"`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	count, err := repo.CountByUser(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("CountByUser error: %v", err)
	}
	if count != 25 {
		t.Fatalf("expected 25, got %d", count)
	}
}

func TestCollectedIDsSkipsEmptyInput(t *testing.T) {
	gdb, _, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewPostgresCollectionRepository(gdb)

	// No SQL expectation registered: an empty id list must not query.
	result, err := repo.CollectedIDs(context.Background(), 1, models.CollectionTypePost, nil)
	if err != nil {
		t.Fatalf("CollectedIDs error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %v", result)
	}
}
