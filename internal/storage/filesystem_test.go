package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePutReturnsPublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	url, err := store.Put(context.Background(), "receipts/don-1.json", "application/json", []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if url != "http://localhost:8080/static/receipts/don-1.json" {
		t.Fatalf("unexpected url: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "receipts", "don-1.json"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected stored content: %s", data)
	}
}

func TestFileStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for _, key := range []string{"", "../escape.json", "a/../../b.json", "."} {
		if _, err := store.Put(context.Background(), key, "application/json", []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
