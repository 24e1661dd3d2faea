package kv

import (
	"errors"
	"testing"

	"github.com/jony86s/chainrocks/pkg/backend"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	b, err := backend.New(t.TempDir(), backend.Options{})
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return New(b)
}

func putAll(t *testing.T, db *Database, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		if err := db.Put([]byte(k), []byte(v)); err != nil {
			t.Fatalf("Put(%q): %v", k, err)
		}
	}
}

func assertAsMap(t *testing.T, db *Database, want map[string]string) {
	t.Helper()
	got, err := db.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("AsMap: got %d entries, want %d: got=%v want=%v", len(got), len(want), got, want)
	}
	for k, v := range want {
		gv, ok := got[k]
		if !ok {
			t.Fatalf("AsMap: missing key %q", k)
		}
		if string(gv) != v {
			t.Fatalf("AsMap[%q] = %q, want %q", k, gv, v)
		}
	}
}

func tenPairs(from, to byte) map[string]string {
	m := make(map[string]string)
	for c := from; c <= to; c++ {
		m[string([]byte{c})] = string([]byte{c - 32}) // lowercase key -> uppercase value
	}
	return m
}

// S1: create+undo from empty.
func TestScenarioS1CreateUndo(t *testing.T) {
	db := newTestDatabase(t)

	_, armed := db.StartSession(true)
	if !armed {
		t.Fatal("expected armed session")
	}

	data := tenPairs('a', 'j')
	putAll(t, db, data)
	assertAsMap(t, db, data)

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, map[string]string{})
}

// S2: pre-fill, nested create+undo.
func TestScenarioS2NestedCreateUndo(t *testing.T) {
	db := newTestDatabase(t)
	prefill := tenPairs('a', 'j')
	putAll(t, db, prefill)

	db.StartSession(true)
	more := tenPairs('k', 't')
	putAll(t, db, more)

	combined := map[string]string{}
	for k, v := range prefill {
		combined[k] = v
	}
	for k, v := range more {
		combined[k] = v
	}
	assertAsMap(t, db, combined)

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, prefill)
}

// S3: modify+undo.
func TestScenarioS3ModifyUndo(t *testing.T) {
	db := newTestDatabase(t)
	prefill := tenPairs('a', 'j')
	putAll(t, db, prefill)

	db.StartSession(true)
	for k := range prefill {
		if err := db.Put([]byte(k), []byte("K"+k)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, prefill)
}

// S4: remove+undo.
func TestScenarioS4RemoveUndo(t *testing.T) {
	db := newTestDatabase(t)
	prefill := tenPairs('a', 'j')
	putAll(t, db, prefill)

	db.StartSession(true)
	for k := range prefill {
		if err := db.Remove([]byte(k)); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}
	assertAsMap(t, db, map[string]string{})

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, prefill)
}

// S5: two sessions, undo_all.
func TestScenarioS5TwoSessionsUndoAll(t *testing.T) {
	db := newTestDatabase(t)

	db.StartSession(true)
	first := tenPairs('a', 'j')
	putAll(t, db, first)

	db.StartSession(true)
	second := tenPairs('k', 't')
	putAll(t, db, second)

	if err := db.UndoAll(); err != nil {
		t.Fatalf("UndoAll: %v", err)
	}
	assertAsMap(t, db, map[string]string{})
	if len(db.Stack()) != 0 {
		t.Fatalf("expected empty stack after UndoAll, got %d entries", len(db.Stack()))
	}
}

// S6: squash of two creates.
func TestScenarioS6SquashTwoCreates(t *testing.T) {
	db := newTestDatabase(t)

	db.StartSession(true)
	first := tenPairs('a', 'j')
	putAll(t, db, first)

	db.StartSession(true)
	second := tenPairs('k', 't')
	putAll(t, db, second)

	stackBefore := db.Stack()
	if len(stackBefore) != 2 {
		t.Fatalf("expected 2 stack entries, got %d", len(stackBefore))
	}
	for k := range second {
		if !stackBefore[1].IsNew(k) {
			t.Fatalf("expected top record to have %q as new", k)
		}
	}
	for k := range first {
		if !stackBefore[0].IsNew(k) {
			t.Fatalf("expected bottom record to have %q as new", k)
		}
	}

	if err := db.Squash(); err != nil {
		t.Fatalf("Squash: %v", err)
	}

	stackAfter := db.Stack()
	if len(stackAfter) != 1 {
		t.Fatalf("expected 1 stack entry after squash, got %d", len(stackAfter))
	}
	for k := range first {
		if !stackAfter[0].IsNew(k) {
			t.Fatalf("expected surviving record to have %q as new", k)
		}
	}
	for k := range second {
		if !stackAfter[0].IsNew(k) {
			t.Fatalf("expected surviving record to have %q as new", k)
		}
	}

	combined := map[string]string{}
	for k, v := range first {
		combined[k] = v
	}
	for k, v := range second {
		combined[k] = v
	}
	assertAsMap(t, db, combined)
}

// S7: squash of create+modify.
func TestScenarioS7SquashCreateModify(t *testing.T) {
	db := newTestDatabase(t)

	db.StartSession(true)
	first := tenPairs('a', 'j')
	putAll(t, db, first)

	db.StartSession(true)
	overwritten := map[string]string{}
	i := 0
	for k := range first {
		if i >= 5 {
			break
		}
		overwritten[k] = "K" + k
		i++
	}
	for k, v := range overwritten {
		if err := db.Put([]byte(k), []byte(v)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	if err := db.Squash(); err != nil {
		t.Fatalf("Squash: %v", err)
	}

	stack := db.Stack()
	if len(stack) != 1 {
		t.Fatalf("expected 1 stack entry, got %d", len(stack))
	}
	if len(stack[0].ModifiedValues) != 0 {
		t.Fatalf("expected no modified_values entries, got %v", stack[0].ModifiedValues)
	}
	for k := range first {
		if !stack[0].IsNew(k) {
			t.Fatalf("expected %q to still be new_keys", k)
		}
	}

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, map[string]string{})
}

// S8: squash of two removes on pre-filled state.
func TestScenarioS8SquashTwoRemoves(t *testing.T) {
	db := newTestDatabase(t)
	prefill := tenPairs('a', 'j')
	putAll(t, db, prefill)

	db.StartSession(true)
	firstHalf := []string{"a", "b", "c", "d", "e"}
	for _, k := range firstHalf {
		if err := db.Remove([]byte(k)); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}

	db.StartSession(true)
	secondHalf := []string{"f", "g", "h", "i"}
	for _, k := range secondHalf {
		if err := db.Remove([]byte(k)); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}

	if err := db.Squash(); err != nil {
		t.Fatalf("Squash: %v", err)
	}

	stack := db.Stack()
	if len(stack) != 1 {
		t.Fatalf("expected 1 stack entry, got %d", len(stack))
	}
	for _, k := range append(firstHalf, secondHalf...) {
		if !stack[0].IsRemoved(k) {
			t.Fatalf("expected %q to be removed in surviving record", k)
		}
	}

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, prefill)
}

func TestDoubleRemoveIsSessionLogicError(t *testing.T) {
	db := newTestDatabase(t)
	if err := db.Put([]byte("a"), []byte("A")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	db.StartSession(true)
	if err := db.Remove([]byte("a")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	err := db.Remove([]byte("a"))
	var logicErr *SessionLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("expected *SessionLogicError, got %v", err)
	}
}

func TestRemoveThenPutPreservesPreimage(t *testing.T) {
	db := newTestDatabase(t)
	if err := db.Put([]byte("a"), []byte("original")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	db.StartSession(true)
	if err := db.Remove([]byte("a")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := db.Put([]byte("a"), []byte("reborn")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stack := db.Stack()
	if !stack[0].IsRemoved("a") {
		t.Fatal("expected a to remain tracked as removed, preserving the original pre-image")
	}
	if string(stack[0].RemovedValues["a"]) != "original" {
		t.Fatalf("expected preserved pre-image %q, got %q", "original", stack[0].RemovedValues["a"])
	}

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, map[string]string{"a": "original"})
}

func TestCommitLeavesRevisionUnchanged(t *testing.T) {
	db := newTestDatabase(t)

	db.StartSession(true)
	if err := db.Put([]byte("a"), []byte("A")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rev := db.Revision()

	db.Commit()

	if db.Revision() != rev {
		t.Fatalf("expected revision to stay at %d after commit, got %d", rev, db.Revision())
	}
	if len(db.Stack()) != 0 {
		t.Fatal("expected empty stack after commit")
	}
	assertAsMap(t, db, map[string]string{"a": "A"})
}

func TestRevisionMonotonicity(t *testing.T) {
	db := newTestDatabase(t)

	r1, _ := db.StartSession(true)
	r2, _ := db.StartSession(true)
	r3, _ := db.StartSession(true)

	if !(r1 < r2 && r2 < r3) {
		t.Fatalf("expected strictly increasing revisions, got %d %d %d", r1, r2, r3)
	}
	if db.Revision() != r3 {
		t.Fatalf("expected database revision to equal top revision %d, got %d", r3, db.Revision())
	}

	stack := db.Stack()
	for i := 1; i < len(stack); i++ {
		if stack[i-1].Revision >= stack[i].Revision {
			t.Fatalf("expected strictly increasing stack revisions, got %v", stack)
		}
	}
}

func TestDisjointnessInvariant(t *testing.T) {
	db := newTestDatabase(t)
	putAll(t, db, map[string]string{"a": "A", "b": "B"})

	db.StartSession(true)
	if err := db.Put([]byte("c"), []byte("C")); err != nil { // new
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put([]byte("a"), []byte("A2")); err != nil { // modified
		t.Fatalf("Put: %v", err)
	}
	if err := db.Remove([]byte("b")); err != nil { // removed
		t.Fatalf("Remove: %v", err)
	}

	for _, r := range db.Stack() {
		for k := range r.NewKeys {
			if r.IsModified(k) || r.IsRemoved(k) {
				t.Fatalf("key %q present in new_keys and another collection", k)
			}
		}
		for k := range r.ModifiedValues {
			if r.IsNew(k) || r.IsRemoved(k) {
				t.Fatalf("key %q present in modified_values and another collection", k)
			}
		}
		for k := range r.RemovedValues {
			if r.IsNew(k) || r.IsModified(k) {
				t.Fatalf("key %q present in removed_values and another collection", k)
			}
		}
	}
}

func TestRAIIlessSessionDiscardedWithoutCloseStillUndoesViaUndo(t *testing.T) {
	// pkg/kv itself has no destructor semantics; this documents that the
	// caller invoking Undo explicitly restores state. pkg/session covers
	// the actual scope-exit behavior.
	db := newTestDatabase(t)
	putAll(t, db, map[string]string{"a": "A"})

	db.StartSession(true)
	if err := db.Put([]byte("b"), []byte("B")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := db.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertAsMap(t, db, map[string]string{"a": "A"})
}
