package kvfile

import (
	"testing"
)

func TestTablePutGetRoundTrip(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table := db.Table("things")

	if err := table.Put([]byte("key1"), []byte("value1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := table.Get([]byte("key1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value1" {
		t.Fatalf("got %q, want %q", got, "value1")
	}
}

func TestTableGetNotFound(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table := db.Table("things")

	if _, err := table.Get([]byte("missing")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTableHasAndDelete(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table := db.Table("things")

	if err := table.Put([]byte("key1"), []byte("value1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	has, err := table.Has([]byte("key1"))
	if err != nil || !has {
		t.Fatalf("expected Has to report true, got has=%v err=%v", has, err)
	}

	if err := table.Delete([]byte("key1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	has, err = table.Has([]byte("key1"))
	if err != nil || has {
		t.Fatalf("expected Has to report false after delete, got has=%v err=%v", has, err)
	}
}

func TestTableForEach(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table := db.Table("things")

	want := map[string]string{"a": "1", "b": "2", "c": "3"}
	for k, v := range want {
		if err := table.Put([]byte(k), []byte(v)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got := make(map[string]bool)
	err = table.ForEach(func(value []byte) error {
		got[string(value)] = true
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for _, v := range want {
		if !got[v] {
			t.Fatalf("expected ForEach to visit value %q", v)
		}
	}
}

func TestDatabaseUpdateVisibleToView(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	table := db.Table("things")

	err = db.Update(func() error {
		return table.Put([]byte("key1"), []byte("value1"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = db.View(func() error {
		_, err := table.Get([]byte("key1"))
		return err
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}
