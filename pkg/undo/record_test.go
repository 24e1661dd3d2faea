package undo

import "testing"

func TestNewRecordEmpty(t *testing.T) {
	r := NewRecord(1)
	if !r.Empty() {
		t.Fatal("expected a freshly constructed record to be empty")
	}
	if r.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", r.Revision)
	}
}

func TestRecordTracks(t *testing.T) {
	r := NewRecord(1)
	r.NewKeys["a"] = struct{}{}
	r.ModifiedValues["b"] = []byte("old")
	r.RemovedValues["c"] = []byte("gone")

	for _, k := range []string{"a", "b", "c"} {
		if !r.Tracks(k) {
			t.Fatalf("expected %q to be tracked", k)
		}
	}
	if r.Tracks("d") {
		t.Fatal("expected untouched key to not be tracked")
	}
	if r.Empty() {
		t.Fatal("expected record with entries to not be empty")
	}
}

func TestRecordIsNewIsRemoved(t *testing.T) {
	r := NewRecord(1)
	r.NewKeys["a"] = struct{}{}
	r.RemovedValues["b"] = []byte("gone")

	if !r.IsNew("a") {
		t.Fatal("expected a to be new")
	}
	if r.IsRemoved("a") {
		t.Fatal("expected a to not be removed")
	}
	if !r.IsRemoved("b") {
		t.Fatal("expected b to be removed")
	}
	if r.IsNew("b") {
		t.Fatal("expected b to not be new")
	}
}
