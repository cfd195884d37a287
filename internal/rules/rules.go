// Package rules contains the pure decision logic over evaluated records:
// criteria construction, sorting, remove-set pruning, and the threshold
// solver behind --target. Nothing here touches the filesystem.
package rules

import (
	"math"
	"sort"
	"strings"

	"github.com/blackwell-systems/uvprune/internal/evaluator"
)

// Defaults applied by BuildCriteria when a value was not supplied.
const (
	DefaultMinAgeDays = 30

	// FloorMinAgeDays is the hard lower bound AutoAdjust will return,
	// regardless of the computed threshold.
	FloorMinAgeDays = 7
)

// Options carries the raw, possibly-absent user inputs for criteria
// construction. Nil means the caller did not supply the value, which is
// distinct from supplying its zero value.
type Options struct {
	MinAgeDays *int
	MinSizeMB  *int64
	UnusedOnly *bool
}

// BuildCriteria constructs the active criteria set from user input.
// Missing age defaults to 30 days, missing unused-only to true, and a
// missing size threshold stays absent (no size filter).
func BuildCriteria(o Options) evaluator.Criteria {
	c := evaluator.Criteria{
		MinAgeDays: DefaultMinAgeDays,
		UnusedOnly: true,
	}
	if o.MinAgeDays != nil {
		c.MinAgeDays = *o.MinAgeDays
	}
	if o.UnusedOnly != nil {
		c.UnusedOnly = *o.UnusedOnly
	}
	if o.MinSizeMB != nil {
		size := *o.MinSizeMB
		c.MinSizeMB = &size
	}
	return c
}

// Sort keys accepted by Sort.
const (
	SortByAge      = "age"
	SortBySize     = "size"
	SortByName     = "name"
	SortByAccessed = "accessed"
	SortByModified = "modified"
	SortByCreated  = "created"
)

// Sort returns a copy of records ordered by the given key: descending for
// every key except name, which sorts ascending. Unknown keys fall back to
// age. The sort is stable, and zero-valued fields (error records never got
// their metadata) order naturally rather than erroring.
func Sort(records []*evaluator.Record, key string) []*evaluator.Record {
	sorted := make([]*evaluator.Record, len(records))
	copy(sorted, records)

	var less func(a, b *evaluator.Record) bool
	switch strings.ToLower(key) {
	case SortBySize:
		less = func(a, b *evaluator.Record) bool { return a.SizeBytes > b.SizeBytes }
	case SortByName:
		less = func(a, b *evaluator.Record) bool { return a.Name < b.Name }
	case SortByAccessed:
		less = func(a, b *evaluator.Record) bool { return a.LastAccessed.After(b.LastAccessed) }
	case SortByModified:
		less = func(a, b *evaluator.Record) bool { return a.LastModified.After(b.LastModified) }
	case SortByCreated:
		less = func(a, b *evaluator.Record) bool { return a.Created.After(b.Created) }
	default:
		less = func(a, b *evaluator.Record) bool { return a.AgeDays > b.AgeDays }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// Prune returns only the remove-status records, in their incoming order,
// truncated to limit. A negative limit means no truncation.
func Prune(records []*evaluator.Record, limit int) []*evaluator.Record {
	var toRemove []*evaluator.Record
	for _, rec := range records {
		if rec.Status == evaluator.StatusRemove {
			toRemove = append(toRemove, rec)
		}
	}

	if limit >= 0 && len(toRemove) > limit {
		return toRemove[:limit]
	}
	return toRemove
}

// AutoAdjust back-solves an age threshold that would mark approximately
// target records for removal. It sorts a copy by age descending and takes
// the age of the target-th oldest record as the raw threshold, floored at
// 7 days. Degenerate inputs (empty set, target <= 0, target >= population)
// return the floor criteria outright.
//
// The result is approximate by design: it ignores the size and activity
// criteria that may still keep individual records.
func AutoAdjust(records []*evaluator.Record, target int) evaluator.Criteria {
	floor := evaluator.Criteria{MinAgeDays: FloorMinAgeDays, UnusedOnly: true}

	if len(records) == 0 || target <= 0 || target >= len(records) {
		return floor
	}

	byAge := make([]*evaluator.Record, len(records))
	copy(byAge, records)
	sort.SliceStable(byAge, func(i, j int) bool { return byAge[i].AgeDays > byAge[j].AgeDays })

	// The age of the target-th oldest record: a >= filter at that value
	// admits exactly the target oldest records from this input.
	idx := target - 1
	if idx > len(byAge)-1 {
		idx = len(byAge) - 1
	}

	threshold := int(math.Floor(byAge[idx].AgeDays))
	if threshold < FloorMinAgeDays {
		threshold = FloorMinAgeDays
	}

	return evaluator.Criteria{MinAgeDays: threshold, UnusedOnly: true}
}
