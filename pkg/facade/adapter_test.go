package facade_test

import (
	"testing"

	"github.com/jony86s/chainrocks/pkg/backend"
	"github.com/jony86s/chainrocks/pkg/facade"
	"github.com/jony86s/chainrocks/pkg/kv"
)

func TestFacadePutIsBufferedUntilWrite(t *testing.T) {
	b, err := backend.New(t.TempDir(), backend.Options{})
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	db := kv.New(b)
	f := facade.NewChainrocksFacade(db)

	if err := f.Put(42, []byte("hello"), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := db.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("expected Put to be buffered, not visible before Write")
	}

	if err := f.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err = db.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after Write, got %d", len(got))
	}
}

func TestFacadeSwap(t *testing.T) {
	b, err := backend.New(t.TempDir(), backend.Options{})
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	db := kv.New(b)
	f := facade.NewChainrocksFacade(db)

	if err := f.Put(1, []byte("one"), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := f.Put(2, []byte("two"), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := f.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := f.Swap(1, 2); err != nil {
		t.Fatalf("Swap: %v", err)
	}

	got, err := db.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}

	keyOf := func(n uint64) string {
		b := make([]byte, 8)
		for i := 7; i >= 0; i-- {
			b[i] = byte(n)
			n >>= 8
		}
		return string(b)
	}

	if string(got[keyOf(1)]) != "two" {
		t.Fatalf("expected account 1 to hold %q, got %q", "two", got[keyOf(1)])
	}
	if string(got[keyOf(2)]) != "one" {
		t.Fatalf("expected account 2 to hold %q, got %q", "one", got[keyOf(2)])
	}
}
