package storage

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"testing"

	"serverless-blog-api/internal/models"
)

// testTableContract exercises the behavior every Table implementation must share
func testTableContract(t *testing.T, table Table) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get missing record", func(t *testing.T) {
		_, err := table.Get(ctx, "missing")
		if !IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("Put and Get", func(t *testing.T) {
		record := models.Record{
			"id":    "1",
			"title": "Hello",
			"views": json.Number("3"),
			"big":   json.Number("12345678901234567890"),
			"tags":  []interface{}{"go", "aws"},
			"meta":  map[string]interface{}{"draft": false, "score": json.Number("9007199254740993")},
		}
		if err := table.Put(ctx, record); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := table.Get(ctx, "1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !reflect.DeepEqual(got, record) {
			t.Errorf("Record mismatch: got %v, want %v", got, record)
		}
	})

	t.Run("Put replaces the whole record", func(t *testing.T) {
		if err := table.Put(ctx, models.Record{"id": "x", "foo": "bar", "extra": "gone"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := table.Put(ctx, models.Record{"id": "x", "foo": "baz"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := table.Get(ctx, "x")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		want := models.Record{"id": "x", "foo": "baz"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected full replace: got %v, want %v", got, want)
		}
	})

	t.Run("Scan returns every record", func(t *testing.T) {
		records, err := table.Scan(ctx)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		var ids []string
		for _, r := range records {
			ids = append(ids, r.ID())
		}
		sort.Strings(ids)

		if want := []string{"1", "x"}; !reflect.DeepEqual(ids, want) {
			t.Errorf("Scan ids = %v, want %v", ids, want)
		}
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := table.Delete(ctx, "x"); err != nil {
				t.Fatalf("Delete #%d failed: %v", i+1, err)
			}
		}

		if _, err := table.Get(ctx, "x"); !IsNotFound(err) {
			t.Errorf("Expected deleted record to be gone, got %v", err)
		}
	})

	t.Run("Put without id fails", func(t *testing.T) {
		if err := table.Put(ctx, models.Record{"title": "orphan"}); err == nil {
			t.Error("Expected an error for a record without id")
		}
	})
}
