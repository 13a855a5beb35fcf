// Package filter translates country-metadata request parameters into
// predicates over the static country reference set. Field resolution goes
// through an explicit descriptor table instead of runtime introspection, so
// every filterable field, its label and its comparator are enumerable.
package filter

import "github.com/eaudeweb/lawkit/internal/domain"

// Kind selects the comparator a descriptor uses.
type Kind int

const (
	// KindBool matches a literal boolean parameter against a flag field.
	KindBool Kind = iota
	// KindList matches when the field's name set intersects the requested
	// name list.
	KindList
	// KindRange matches when the field value falls inside the bucket the
	// requested index selects.
	KindRange
)

// Descriptor declares one filterable country-metadata field. Exactly one of
// Bool/List/Value is set, matching Kind.
type Descriptor struct {
	Name    string
	Label   string
	Kind    Kind
	Buckets domain.RangeTable

	Bool  func(*domain.Country) bool
	List  func(*domain.Country) []string
	Value func(*domain.Country) float64
}

// Fields is the full descriptor table, in the order filters are evaluated.
var Fields = []Descriptor{
	{Name: "cw", Label: "Coastal waters", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.CW }},
	{Name: "small_cw", Label: "Small coastal waters state", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.SmallCW }},
	{Name: "un", Label: "UN member", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.UN }},
	{Name: "ldc", Label: "Least developed country", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.LDC }},
	{Name: "lldc", Label: "Landlocked developing country", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.LLDC }},
	{Name: "sid", Label: "Small island developing state", Kind: KindBool,
		Bool: func(c *domain.Country) bool { return c.SID }},

	{Name: "region", Label: "Region", Kind: KindList,
		List: func(c *domain.Country) []string { return []string{c.Region} }},
	{Name: "sub_region", Label: "Sub-region", Kind: KindList,
		List: func(c *domain.Country) []string { return []string{c.SubRegion} }},
	{Name: "legal_system", Label: "Legal system", Kind: KindList,
		List: func(c *domain.Country) []string { return c.LegalSystems }},

	{Name: "population", Label: "Population range", Kind: KindRange,
		Buckets: domain.PopulationRanges,
		Value:   func(c *domain.Country) float64 { return c.Population }},
	{Name: "hdi2015", Label: "HDI Range", Kind: KindRange,
		Buckets: domain.HDIRanges,
		Value:   func(c *domain.Country) float64 { return c.HDI2015 }},
	{Name: "gdp_capita", Label: "GDP Range", Kind: KindRange,
		Buckets: domain.GDPRanges,
		Value:   func(c *domain.Country) float64 { return c.GDPCapita }},
	{Name: "ghg_no_lucf", Label: "Total GHG Emissions excluding LUCF MtCO2e 2014 ranges", Kind: KindRange,
		Buckets: domain.GHGNoLUCFRanges,
		Value:   func(c *domain.Country) float64 { return c.GHGNoLUCF }},
	{Name: "ghg_lucf", Label: "Total GHG Emissions including LUCF MtCO2e 2014 ranges", Kind: KindRange,
		Buckets: domain.GHGLUCFRanges,
		Value:   func(c *domain.Country) float64 { return c.GHGLUCF }},
}
