package kernel

import "slices"

// ChangeLog records which kinds of change an aggregate went through since it was
// created or restored. Aggregates embed it; the unit of work turns the recorded kinds
// into outbox events when the transaction commits.
type ChangeLog struct {
	kinds []string
}

// RecordChange appends kind once. Repeated kinds collapse into one entry because every
// event carries a full snapshot taken at commit time.
func (l *ChangeLog) RecordChange(kind string) {
	if slices.Contains(l.kinds, kind) {
		return
	}
	l.kinds = append(l.kinds, kind)
}

// Changes returns a copy of the recorded kinds in order of first occurrence.
func (l *ChangeLog) Changes() []string {
	return slices.Clone(l.kinds)
}

// ClearChanges forgets the recorded kinds.
func (l *ChangeLog) ClearChanges() {
	l.kinds = nil
}
