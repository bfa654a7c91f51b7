package entitlement

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Kind discriminates the nodes of a feature tree.
type Kind uint8

const (
	// KindGroup is a category holding named children (e.g. "analytics").
	KindGroup Kind = iota
	// KindFlag is an on/off capability.
	KindFlag
	// KindQuota is a numeric ceiling with an unlimited override.
	KindQuota
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindQuota:
		return "quota"
	default:
		return "group"
	}
}

// Quota is a usage ceiling. A quota is either limited to a non-negative
// number or unlimited, never both.
type Quota struct {
	limit     int64
	unlimited bool
}

// Limit returns the ceiling. Unlimited quotas report 0.
func (q Quota) Limit() int64 {
	if q.unlimited {
		return 0
	}
	return q.limit
}

// Unlimited reports whether the quota has no ceiling.
func (q Quota) Unlimited() bool {
	return q.unlimited
}

// Allows reports whether one more unit fits given the current usage.
func (q Quota) Allows(current int64) bool {
	return q.unlimited || current < q.limit
}

// Percentage returns usage as a percentage capped at 100, or -1 for unlimited quotas.
func (q Quota) Percentage(used int64) int {
	if q.unlimited {
		return -1
	}
	if q.limit == 0 {
		return 100
	}
	return int(min((used*100)/q.limit, 100))
}

// covers reports whether q grants at least as much as other.
func (q Quota) covers(other Quota) bool {
	if q.unlimited {
		return true
	}
	if other.unlimited {
		return false
	}
	return q.limit >= other.limit
}

// MarshalJSON encodes the quota the way clients expect it: {"limit": n|null, "unlimited": bool}.
func (q Quota) MarshalJSON() ([]byte, error) {
	var limit *int64
	if !q.unlimited {
		limit = &q.limit
	}
	return json.Marshal(struct {
		Limit     *int64 `json:"limit"`
		Unlimited bool   `json:"unlimited"`
	}{limit, q.unlimited})
}

// Node is one node of a plan's feature tree: a group, a flag, or a quota.
// Nodes are immutable; the zero value is an empty group.
type Node struct {
	kind     Kind
	enabled  bool
	quota    Quota
	children map[string]Node
}

// Features names the children of a group node.
type Features map[string]Node

// Flag returns a capability leaf.
func Flag(enabled bool) Node {
	return Node{kind: KindFlag, enabled: enabled}
}

// Limit returns a quota leaf capped at n. Panics if n is negative.
func Limit(n int64) Node {
	if n < 0 {
		panic("entitlement: quota limit cannot be negative")
	}
	return Node{kind: KindQuota, quota: Quota{limit: n}}
}

// Unlimited returns a quota leaf without a ceiling.
func Unlimited() Node {
	return Node{kind: KindQuota, quota: Quota{unlimited: true}}
}

// Group returns a category node holding a copy of f.
func Group(f Features) Node {
	return Node{kind: KindGroup, children: maps.Clone(map[string]Node(f))}
}

// Kind returns the node's variant.
func (n Node) Kind() Kind {
	return n.kind
}

// Enabled reports whether n is a flag set to true.
// Groups and quotas are never enabled.
func (n Node) Enabled() bool {
	return n.kind == KindFlag && n.enabled
}

// Quota returns the quota held by n, and false when n is not a quota leaf.
func (n Node) Quota() (Quota, bool) {
	if n.kind != KindQuota {
		return Quota{}, false
	}
	return n.quota, true
}

// Child returns the named child of a group node.
func (n Node) Child(name string) (Node, bool) {
	if n.kind != KindGroup {
		return Node{}, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Resolve walks path one dot-separated segment at a time.
// It reports false as soon as a segment is missing.
func (n Node) Resolve(path Path) (Node, bool) {
	current := n
	for segment := range strings.SplitSeq(string(path), ".") {
		next, ok := current.Child(segment)
		if !ok {
			return Node{}, false
		}
		current = next
	}
	return current, true
}

// Walk calls fn for every leaf under n in lexical path order.
func (n Node) Walk(fn func(path Path, leaf Node)) {
	n.walk("", fn)
}

func (n Node) walk(prefix string, fn func(Path, Node)) {
	if n.kind != KindGroup {
		fn(Path(prefix), n)
		return
	}
	for _, name := range slices.Sorted(maps.Keys(n.children)) {
		p := name
		if prefix != "" {
			p = prefix + "." + name
		}
		n.children[name].walk(p, fn)
	}
}
