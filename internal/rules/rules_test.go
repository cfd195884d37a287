package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/uvprune/internal/evaluator"
)

func agedRecords(ages ...float64) []*evaluator.Record {
	records := make([]*evaluator.Record, len(ages))
	for i, age := range ages {
		records[i] = &evaluator.Record{AgeDays: age}
	}
	return records
}

func TestBuildCriteria_Defaults(t *testing.T) {
	c := BuildCriteria(Options{})

	assert.Equal(t, 30, c.MinAgeDays)
	assert.True(t, c.UnusedOnly)
	assert.Nil(t, c.MinSizeMB)
}

func TestBuildCriteria_ExplicitValues(t *testing.T) {
	age := 14
	size := int64(100)
	unused := false

	c := BuildCriteria(Options{MinAgeDays: &age, MinSizeMB: &size, UnusedOnly: &unused})

	assert.Equal(t, 14, c.MinAgeDays)
	assert.False(t, c.UnusedOnly)
	require.NotNil(t, c.MinSizeMB)
	assert.Equal(t, int64(100), *c.MinSizeMB)
}

func TestBuildCriteria_ZeroSizeIsNotAbsent(t *testing.T) {
	size := int64(0)
	c := BuildCriteria(Options{MinSizeMB: &size})

	require.NotNil(t, c.MinSizeMB)
	assert.Equal(t, int64(0), *c.MinSizeMB)
}

func TestSort_ByAgeDescending(t *testing.T) {
	records := agedRecords(10, 90, 30)

	sorted := Sort(records, SortByAge)

	assert.Equal(t, []float64{90, 30, 10},
		[]float64{sorted[0].AgeDays, sorted[1].AgeDays, sorted[2].AgeDays})
	// Input order untouched.
	assert.Equal(t, 10.0, records[0].AgeDays)
}

func TestSort_ByNameAscending(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "zeta"}, {Name: "alpha"}, {Name: "mid"},
	}

	sorted := Sort(records, SortByName)

	assert.Equal(t, "alpha", sorted[0].Name)
	assert.Equal(t, "mid", sorted[1].Name)
	assert.Equal(t, "zeta", sorted[2].Name)
}

func TestSort_BySizeDescending(t *testing.T) {
	records := []*evaluator.Record{
		{SizeBytes: 5}, {SizeBytes: 500}, {SizeBytes: 50},
	}

	sorted := Sort(records, SortBySize)

	assert.Equal(t, int64(500), sorted[0].SizeBytes)
	assert.Equal(t, int64(5), sorted[2].SizeBytes)
}

func TestSort_ByCreatedDescending(t *testing.T) {
	now := time.Now()
	records := []*evaluator.Record{
		{Name: "old", Created: now.Add(-48 * time.Hour)},
		{Name: "new", Created: now},
	}

	sorted := Sort(records, SortByCreated)

	assert.Equal(t, "new", sorted[0].Name)
}

func TestSort_ZeroValuedRecordsDoNotCrash(t *testing.T) {
	// Error records carry no metadata; they sort on zero values.
	records := []*evaluator.Record{
		{Name: "err", Status: evaluator.StatusError},
		{Name: "ok", AgeDays: 40},
	}

	sorted := Sort(records, SortByAge)
	assert.Equal(t, "ok", sorted[0].Name)

	sorted = Sort(records, SortByName)
	assert.Equal(t, "err", sorted[0].Name)
}

func TestSort_UnknownKeyFallsBackToAge(t *testing.T) {
	records := agedRecords(1, 99)

	sorted := Sort(records, "bogus")

	assert.Equal(t, 99.0, sorted[0].AgeDays)
}

func TestSort_StableForEqualKeys(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "first", AgeDays: 30},
		{Name: "second", AgeDays: 30},
		{Name: "third", AgeDays: 30},
	}

	sorted := Sort(records, SortByAge)

	assert.Equal(t, "first", sorted[0].Name)
	assert.Equal(t, "second", sorted[1].Name)
	assert.Equal(t, "third", sorted[2].Name)
}

func TestPrune_OnlyRemoveStatus(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "a", Status: evaluator.StatusRemove},
		{Name: "b", Status: evaluator.StatusKeep},
		{Name: "c", Status: evaluator.StatusRemove},
		{Name: "d", Status: evaluator.StatusError},
		{Name: "e", Status: evaluator.StatusRemove},
	}

	pruned := Prune(records, -1)

	require.Len(t, pruned, 3)
	for _, rec := range pruned {
		assert.Equal(t, evaluator.StatusRemove, rec.Status)
	}
}

func TestPrune_LimitPreservesOrder(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "a", Status: evaluator.StatusRemove},
		{Name: "b", Status: evaluator.StatusKeep},
		{Name: "c", Status: evaluator.StatusRemove},
		{Name: "d", Status: evaluator.StatusRemove},
	}

	pruned := Prune(records, 2)

	require.Len(t, pruned, 2)
	assert.Equal(t, "a", pruned[0].Name)
	assert.Equal(t, "c", pruned[1].Name)
}

func TestPrune_LimitLargerThanSet(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "a", Status: evaluator.StatusRemove},
	}

	assert.Len(t, Prune(records, 10), 1)
}

func TestPrune_ZeroLimit(t *testing.T) {
	records := []*evaluator.Record{
		{Name: "a", Status: evaluator.StatusRemove},
	}

	assert.Empty(t, Prune(records, 0))
}

func TestAutoAdjust_DegenerateInputs(t *testing.T) {
	floor := evaluator.Criteria{MinAgeDays: 7, UnusedOnly: true}

	assert.Equal(t, floor, AutoAdjust(nil, 3))
	assert.Equal(t, floor, AutoAdjust(agedRecords(10, 20), 0))
	assert.Equal(t, floor, AutoAdjust(agedRecords(10, 20), -1))
	assert.Equal(t, floor, AutoAdjust(agedRecords(10, 20), 2))
	assert.Equal(t, floor, AutoAdjust(agedRecords(10, 20), 5))
}

func TestAutoAdjust_TargetThree(t *testing.T) {
	records := agedRecords(5, 10, 15, 20, 30, 60, 90)

	c := AutoAdjust(records, 3)

	assert.Equal(t, 30, c.MinAgeDays)
	assert.True(t, c.UnusedOnly)

	// Used as a >= filter, the threshold admits exactly three records.
	count := 0
	for _, rec := range records {
		if rec.AgeDays >= float64(c.MinAgeDays) {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestAutoAdjust_TargetExceedsPopulation(t *testing.T) {
	records := agedRecords(5, 10, 15, 20, 30, 60, 90)

	c := AutoAdjust(records, 10)

	assert.Equal(t, 7, c.MinAgeDays)
	assert.True(t, c.UnusedOnly)
}

func TestAutoAdjust_FloorApplies(t *testing.T) {
	// Young population: computed threshold would be below the 7-day floor.
	records := agedRecords(1, 2, 3, 4, 5)

	c := AutoAdjust(records, 2)

	assert.Equal(t, 7, c.MinAgeDays)
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	records := []*evaluator.Record{
		{Name: "old", Status: evaluator.StatusRemove, SizeBytes: 100, Created: now.Add(-72 * time.Hour)},
		{Name: "new", Status: evaluator.StatusRemove, SizeBytes: 250, Created: now},
		{Name: "kept", Status: evaluator.StatusKeep, SizeBytes: 999},
		{Name: "broken", Status: evaluator.StatusError},
	}

	s := Summarize(records)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ToRemove)
	assert.Equal(t, 1, s.ToKeep)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, int64(350), s.BytesToRemove)
	require.NotNil(t, s.Oldest)
	require.NotNil(t, s.Newest)
	assert.Equal(t, "old", s.Oldest.Name)
	assert.Equal(t, "new", s.Newest.Name)
}

func TestSummarize_EmptyRemoveSet(t *testing.T) {
	s := Summarize([]*evaluator.Record{{Status: evaluator.StatusKeep}})

	assert.Equal(t, 1, s.ToKeep)
	assert.Nil(t, s.Oldest)
	assert.Nil(t, s.Newest)
}
