package documents

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("doc-1", "user-1", "Lease", "https://x/o", "https://x/t", "originals/k", "converted/k.txt", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), Document{
		ID:          "doc-1",
		UserID:      "user-1",
		Name:        "Lease",
		OriginalURL: "https://x/o",
		TxtURL:      "https://x/t",
		OriginalKey: "originals/k",
		TxtKey:      "converted/k.txt",
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetByIDScopedToUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND id = $2")).
		WithArgs("user-2", "doc-1").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "user-2", "doc-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "original_url", "txt_url", "original_key", "txt_key", "created_at",
	}).AddRow("doc-2", "user-1", "Newer", "https://x/o2", "https://x/t2", "originals/k2", "converted/k2.txt", created).
		AddRow("doc-1", "user-1", "Older", "https://x/o1", "https://x/t1", "originals/k1", "converted/k1.txt", created.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" {
		t.Fatalf("unexpected result: %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "original_url", "txt_url", "original_key", "txt_key", "created_at",
	})
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("user-1", 100, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	if _, err := repo.ListByUser(context.Background(), "user-1", 5000, -3); err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoDeleteMissingRowIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents")).
		WithArgs("user-1", "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.Delete(context.Background(), "user-1", "nope"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
