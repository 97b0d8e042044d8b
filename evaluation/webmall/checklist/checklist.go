package checklist

// Checklist is the ordered, weighted set of checkpoints for one task
// instance. Evaluators flip flags in place; the list itself is never rebuilt.
// It is not safe for concurrent use.
type Checklist struct {
	checkpoints []*Checkpoint
}

// New wraps checkpoints into a checklist, keeping their order.
func New(checkpoints ...*Checkpoint) *Checklist {
	return &Checklist{checkpoints: checkpoints}
}

// Checkpoints returns the checkpoints in construction order.
func (l *Checklist) Checkpoints() []*Checkpoint {
	return l.checkpoints
}

// Len returns the number of checkpoints.
func (l *Checklist) Len() int {
	return len(l.checkpoints)
}

// ByType returns every checkpoint of type t, satisfied or not.
func (l *Checklist) ByType(t Type) []*Checkpoint {
	var out []*Checkpoint
	for _, cp := range l.checkpoints {
		if cp.Type == t {
			out = append(out, cp)
		}
	}
	return out
}

// GroupByType buckets the checkpoints by type.
func (l *Checklist) GroupByType() map[Type][]*Checkpoint {
	grouped := make(map[Type][]*Checkpoint)
	for _, cp := range l.checkpoints {
		grouped[cp.Type] = append(grouped[cp.Type], cp)
	}
	return grouped
}

// UnsatisfiedTypes returns the distinct types that still have an open
// checkpoint. Known types come first in AllTypes order, unknown ones follow
// in order of first appearance.
func (l *Checklist) UnsatisfiedTypes() []Type {
	open := make(map[Type]bool)
	var unknown []Type
	known := make(map[Type]bool)
	for _, t := range AllTypes() {
		known[t] = true
	}
	for _, cp := range l.checkpoints {
		if cp.Satisfied() || open[cp.Type] {
			continue
		}
		open[cp.Type] = true
		if !known[cp.Type] {
			unknown = append(unknown, cp.Type)
		}
	}

	var types []Type
	for _, t := range AllTypes() {
		if open[t] {
			types = append(types, t)
		}
	}
	return append(types, unknown...)
}

// TotalScore sums the weights of satisfied checkpoints.
func (l *Checklist) TotalScore() float64 {
	var total float64
	for _, cp := range l.checkpoints {
		if cp.Satisfied() {
			total += cp.Weight
		}
	}
	return total
}

// MaxScore sums every weight.
func (l *Checklist) MaxScore() float64 {
	var total float64
	for _, cp := range l.checkpoints {
		total += cp.Weight
	}
	return total
}

// AllCompleted reports whether every checkpoint is satisfied.
func (l *Checklist) AllCompleted() bool {
	for _, cp := range l.checkpoints {
		if !cp.Satisfied() {
			return false
		}
	}
	return true
}

// Checked returns the satisfied checkpoints.
func (l *Checklist) Checked() []*Checkpoint {
	var out []*Checkpoint
	for _, cp := range l.checkpoints {
		if cp.Satisfied() {
			out = append(out, cp)
		}
	}
	return out
}

// Unchecked returns the open checkpoints.
func (l *Checklist) Unchecked() []*Checkpoint {
	var out []*Checkpoint
	for _, cp := range l.checkpoints {
		if !cp.Satisfied() {
			out = append(out, cp)
		}
	}
	return out
}

// Records serializes the full checklist in order.
func (l *Checklist) Records() []Record {
	records := make([]Record, 0, len(l.checkpoints))
	for _, cp := range l.checkpoints {
		records = append(records, cp.Record())
	}
	return records
}

// Flags snapshots the satisfied state by position.
func (l *Checklist) Flags() []bool {
	flags := make([]bool, len(l.checkpoints))
	for i, cp := range l.checkpoints {
		flags[i] = cp.Satisfied()
	}
	return flags
}

// NewlySatisfied returns the checkpoints that are satisfied now but were not
// in the before snapshot taken with Flags.
func (l *Checklist) NewlySatisfied(before []bool) []Record {
	out := make([]Record, 0)
	for i, cp := range l.checkpoints {
		was := i < len(before) && before[i]
		if cp.Satisfied() && !was {
			out = append(out, cp.Record())
		}
	}
	return out
}
