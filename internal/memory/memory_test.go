package memory

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path, "Portuguese (Brazil)", "", "openai/gpt-4o-mini", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Get(context.Background(), "Add to Cart")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected a miss on an empty cache")
	}
}

func TestPutAndGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "Add to Cart", "Adicionar ao Carrinho"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "Add to Cart")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != "Adicionar ao Carrinho" {
		t.Errorf("Expected cached translation, got %q (ok=%v)", got, ok)
	}
}

func TestPutReplaces(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "Save", "Gravar"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, "Save", "Salvar"); err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}

	got, ok, _ := c.Get(ctx, "Save")
	if !ok || got != "Salvar" {
		t.Errorf("Expected replacement, got %q", got)
	}
}

func TestKeysAreScoped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	pt, err := Open(path, "Portuguese (Brazil)", "", "openai/gpt-4o-mini", "gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	defer pt.Close()

	if err := pt.Put(ctx, "Save", "Salvar"); err != nil {
		t.Fatal(err)
	}

	// Same database, different target language: no sharing.
	fr, err := Open(path, "French", "", "openai/gpt-4o-mini", "gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	defer fr.Close()

	if _, ok, _ := fr.Get(ctx, "Save"); ok {
		t.Error("Cache entries must not leak across target languages")
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	c, err := Open(path, "French", "", "stub", "m")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, "Save", "Enregistrer"); err != nil {
		t.Fatal(err)
	}
	c.Close()

	c, err = Open(path, "French", "", "stub", "m")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	got, ok, err := c.Get(ctx, "Save")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != "Enregistrer" {
		t.Errorf("Expected persisted translation, got %q (ok=%v)", got, ok)
	}
}
