package domain

// Kind tags the node type a Key refers to in the incremental graph.
type Kind string

// KindActionResult is the kind for memoized action results.
const KindActionResult Kind = "action_result"

// Key is the memoization identity of an ActionRecord: a fixed node-kind
// tag paired with the stable identity of the action that produced it.
// Keys are comparable values; two keys are equal iff they reference the
// same action identity.
type Key struct {
	Kind     Kind
	ActionID string
}

// KeyFor derives the memoization key for an action.
func KeyFor(action *Action) Key {
	return Key{Kind: KindActionResult, ActionID: action.ID()}
}

// String returns a stable textual form of the key, suitable for naming
// persisted cache entries.
func (k Key) String() string {
	return string(k.Kind) + ":" + k.ActionID
}

// UserVisible reports whether the action behind key should be counted in
// user-facing progress output: it must be an action-result key and the
// action must carry a non-empty progress message. Helper actions without
// one tend to be instantaneous and only add noise to progress reports.
// Purely a presentation filter; correctness never depends on it.
func UserVisible(key Key, action *Action) bool {
	return key.Kind == KindActionResult && action != nil && action.Progress != ""
}
