package kv

import (
	"github.com/jony86s/chainrocks/pkg/log"
	"github.com/jony86s/chainrocks/pkg/undo"
)

// squashInto merges b (newer, on top) into a (older, below), leaving a as
// the record equivalent to "apply a then apply b" viewed as a diff against
// the live state as it was before a started. b is left untouched; the
// caller discards it after calling squashInto.
//
// This does not replicate the reference implementation's literal
// three-pass call order (new_keys pass, then modified_values pass, then
// removed_values pass, each touching a's collections directly). That order
// lets one pass observe a's collections already mutated by an earlier
// pass for keys that pass never meant to touch, which is only safe because
// a single key can appear in at most one of b's three collections. Here
// each b key is classified and reconciled against a's original state in
// one pass per collection, with no cross-collection ordering dependency -
// see DESIGN.md for the worked case that motivated this.
func squashInto(a, b *undo.UndoRecord) {
	squashLog := log.WithComponent("kv")

	for k := range b.NewKeys {
		switch {
		case a.IsNew(k):
			// already new in a; idempotent, nothing to do.
		case a.IsModified(k):
			squashLog.Warn().Str("key", k).Msg("squash: key modified in A but created in B (impossible row)")
		case a.IsRemoved(k):
			a.ModifiedValues[k] = a.RemovedValues[k]
			delete(a.RemovedValues, k)
		default:
			a.NewKeys[k] = struct{}{}
		}
	}

	for k, v := range b.ModifiedValues {
		switch {
		case a.IsNew(k):
			// a already says k is newly created; keep that, discard b's pre-image.
		case a.IsModified(k):
			// a's pre-image is older and wins; discard b's.
		case a.IsRemoved(k):
			squashLog.Warn().Str("key", k).Msg("squash: key removed in A but modified in B (impossible row)")
		default:
			a.ModifiedValues[k] = v
		}
	}

	for k, v := range b.RemovedValues {
		switch {
		case a.IsNew(k):
			delete(a.NewKeys, k)
		case a.IsModified(k):
			a.RemovedValues[k] = a.ModifiedValues[k]
			delete(a.ModifiedValues, k)
		case a.IsRemoved(k):
			squashLog.Warn().Str("key", k).Msg("squash: key removed in both A and B (impossible row)")
		default:
			a.RemovedValues[k] = v
		}
	}
}
