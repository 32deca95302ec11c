package storage

import (
	"context"
	"errors"
	"testing"

	"serverless-blog-api/internal/models"
)

func TestMemoryTable(t *testing.T) {
	table := NewMemoryTable()
	defer table.Close()

	testTableContract(t, table)
}

func TestMemoryTable_IsolatesStoredRecords(t *testing.T) {
	table := NewMemoryTable()
	defer table.Close()
	ctx := context.Background()

	record := models.Record{"id": "1", "title": "Hello"}
	if err := table.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the table
	record["title"] = "Changed"

	got, err := table.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got["title"] != "Hello" {
		t.Errorf("Expected stored title Hello, got %v", got["title"])
	}

	got["title"] = "Changed again"
	again, _ := table.Get(ctx, "1")
	if again["title"] != "Hello" {
		t.Errorf("Returned record shares storage with the table")
	}
}

func TestMemoryTable_MissingKey(t *testing.T) {
	table := NewMemoryTable()
	defer table.Close()

	err := table.Put(context.Background(), models.Record{"title": "no id"})
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("Expected ErrMissingKey, got %v", err)
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "Put" {
		t.Errorf("Expected StorageError for Put, got %T", err)
	}
}

func TestMemoryTable_Closed(t *testing.T) {
	table := NewMemoryTable()
	ctx := context.Background()

	if err := table.Put(ctx, models.Record{"id": "1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", table.Len())
	}

	table.Close()

	if _, err := table.Scan(ctx); !errors.Is(err, ErrTableClosed) {
		t.Errorf("Expected ErrTableClosed from Scan, got %v", err)
	}
	if err := table.Delete(ctx, "1"); !errors.Is(err, ErrTableClosed) {
		t.Errorf("Expected ErrTableClosed from Delete, got %v", err)
	}
}

func TestMemoryTable_Reset(t *testing.T) {
	table := NewMemoryTable()
	defer table.Close()
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		table.Put(ctx, models.Record{"id": id})
	}
	table.Reset()

	records, err := table.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 0 || table.Len() != 0 {
		t.Errorf("Expected empty table after Reset, got %d records", len(records))
	}
}
