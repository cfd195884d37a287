package rules

import "github.com/blackwell-systems/uvprune/internal/evaluator"

// Summary is a read-only aggregate view over a list of evaluated records.
type Summary struct {
	Total         int
	ToRemove      int
	ToKeep        int
	Errors        int
	BytesToRemove int64

	// Oldest and Newest are the extremes of the remove set by creation
	// time; nil when nothing is marked for removal.
	Oldest *evaluator.Record
	Newest *evaluator.Record
}

// Summarize computes per-status counts, the total bytes the remove set
// would reclaim, and the oldest/newest removal candidates by creation time.
func Summarize(records []*evaluator.Record) Summary {
	var s Summary
	s.Total = len(records)

	for _, rec := range records {
		switch rec.Status {
		case evaluator.StatusRemove:
			s.ToRemove++
			s.BytesToRemove += rec.SizeBytes
			if s.Oldest == nil || rec.Created.Before(s.Oldest.Created) {
				s.Oldest = rec
			}
			if s.Newest == nil || rec.Created.After(s.Newest.Created) {
				s.Newest = rec
			}
		case evaluator.StatusKeep:
			s.ToKeep++
		case evaluator.StatusError:
			s.Errors++
		}
	}

	return s
}
