package catalogue

import "sort"

// ActionID is the replacement id cell of an action-table row. Upstream
// data delivers it as a bare integer, a list, or a mapping; the variant
// is fixed at the table boundary and normalized exactly once.
type ActionID struct {
	kind    actionIDKind
	single  int
	list    []int
	mapping map[string]int
}

type actionIDKind int

const (
	actionIDAbsent actionIDKind = iota
	actionIDSingle
	actionIDList
	actionIDMapping
)

// SingleID wraps a scalar id.
func SingleID(id int) ActionID {
	return ActionID{kind: actionIDSingle, single: id}
}

// IDFromList wraps a sequence of candidate ids.
func IDFromList(ids []int) ActionID {
	return ActionID{kind: actionIDList, list: ids}
}

// IDFromMapping wraps a mapping of candidate ids.
func IDFromMapping(m map[string]int) ActionID {
	return ActionID{kind: actionIDMapping, mapping: m}
}

// AbsentID is the no-id variant.
func AbsentID() ActionID {
	return ActionID{kind: actionIDAbsent}
}

// Normalize derives a single id: a scalar is used directly, a list
// yields element 0, a mapping yields its first value by key order, and
// the absent or empty shapes yield ok=false.
func (a ActionID) Normalize() (int, bool) {
	switch a.kind {
	case actionIDSingle:
		return a.single, true
	case actionIDList:
		if len(a.list) == 0 {
			return 0, false
		}
		return a.list[0], true
	case actionIDMapping:
		if len(a.mapping) == 0 {
			return 0, false
		}
		keys := make([]string, 0, len(a.mapping))
		for k := range a.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return a.mapping[keys[0]], true
	}
	return 0, false
}
