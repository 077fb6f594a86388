package merkle

import "sort"

// Label is the presentation-only state of a node during a proof session.
// It never affects hashing.
type Label uint8

const (
	LabelNormal Label = iota
	LabelTarget
	LabelWitness
	LabelPath
	LabelError
)

func (l Label) String() string {
	switch l {
	case LabelTarget:
		return "target"
	case LabelWitness:
		return "witness"
	case LabelPath:
		return "path"
	case LabelError:
		return "error"
	default:
		return "normal"
	}
}

// Diagnostics is a label overlay keyed by node id.
// It is owned by the caller of Generate and Verify,
// so several sessions over the same tree can each keep their own.
//
// The zero value is ready to use. A nil *Diagnostics ignores all writes.
type Diagnostics struct {
	labels map[NodeID]Label
}

// NewDiagnostics returns an empty overlay.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{labels: make(map[NodeID]Label)}
}

// Label returns the label for id, LabelNormal when unset.
func (d *Diagnostics) Label(id NodeID) Label {
	if d == nil {
		return LabelNormal
	}
	return d.labels[id]
}

func (d *Diagnostics) set(id NodeID, l Label) {
	if d == nil || id == NoNode {
		return
	}
	if d.labels == nil {
		d.labels = make(map[NodeID]Label)
	}
	if l == LabelNormal {
		delete(d.labels, id)
		return
	}
	d.labels[id] = l
}

// Reset returns every node to LabelNormal.
func (d *Diagnostics) Reset() {
	if d == nil {
		return
	}
	clear(d.labels)
}

// ResetErrors returns only LabelError nodes to LabelNormal.
func (d *Diagnostics) ResetErrors() {
	if d == nil {
		return
	}
	for id, l := range d.labels {
		if l == LabelError {
			delete(d.labels, id)
		}
	}
}

// Marked returns the ids of all nodes that are not LabelNormal, in ascending order.
func (d *Diagnostics) Marked() []NodeID {
	if d == nil {
		return nil
	}
	ids := make([]NodeID, 0, len(d.labels))
	for id := range d.labels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WithLabel returns the ids carrying label l, in ascending order.
func (d *Diagnostics) WithLabel(l Label) []NodeID {
	var ids []NodeID
	for _, id := range d.Marked() {
		if d.labels[id] == l {
			ids = append(ids, id)
		}
	}
	return ids
}
