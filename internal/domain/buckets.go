package domain

import "math"

// Bucket is one named sub-range of a continuous metadata field. Min and Max
// are inclusive bounds.
type Bucket struct {
	Label string
	Min   float64
	Max   float64
}

// RangeTable is an ordered bucket sequence. The external filter parameter is
// an index into it.
type RangeTable []Bucket

// At returns the bucket at index i, reporting whether i is in range.
func (t RangeTable) At(i int) (Bucket, bool) {
	if i < 0 || i >= len(t) {
		return Bucket{}, false
	}
	return t[i], true
}

var (
	PopulationRanges = RangeTable{
		{Label: "< 100,000", Min: 0, Max: 100_000},
		{Label: "100,000 - 1 million", Min: 100_000, Max: 1_000_000},
		{Label: "1 million - 10 million", Min: 1_000_000, Max: 10_000_000},
		{Label: "10 million - 100 million", Min: 10_000_000, Max: 100_000_000},
		{Label: "> 100 million", Min: 100_000_000, Max: math.MaxFloat64},
	}

	HDIRanges = RangeTable{
		{Label: "Low (< 0.550)", Min: 0, Max: 0.550},
		{Label: "Medium (0.550 - 0.699)", Min: 0.550, Max: 0.699},
		{Label: "High (0.700 - 0.799)", Min: 0.700, Max: 0.799},
		{Label: "Very high (>= 0.800)", Min: 0.800, Max: 1},
	}

	GDPRanges = RangeTable{
		{Label: "Low income (< $1,005)", Min: 0, Max: 1_005},
		{Label: "Lower middle income ($1,006 - $3,955)", Min: 1_006, Max: 3_955},
		{Label: "Upper middle income ($3,956 - $12,235)", Min: 3_956, Max: 12_235},
		{Label: "High income (> $12,235)", Min: 12_235, Max: math.MaxFloat64},
	}

	GHGNoLUCFRanges = RangeTable{
		{Label: "< 10 MtCO2e", Min: 0, Max: 10},
		{Label: "10 - 100 MtCO2e", Min: 10, Max: 100},
		{Label: "100 - 1,000 MtCO2e", Min: 100, Max: 1_000},
		{Label: "> 1,000 MtCO2e", Min: 1_000, Max: math.MaxFloat64},
	}

	GHGLUCFRanges = RangeTable{
		{Label: "< 10 MtCO2e", Min: 0, Max: 10},
		{Label: "10 - 100 MtCO2e", Min: 10, Max: 100},
		{Label: "100 - 1,000 MtCO2e", Min: 100, Max: 1_000},
		{Label: "> 1,000 MtCO2e", Min: 1_000, Max: math.MaxFloat64},
	}
)
