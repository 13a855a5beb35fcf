package domain

// Country is the static reference entity keyed by ISO code. The metadata
// attributes are the facet-filterable fields; continuous values are exposed
// to users through the range bucket tables in buckets.go.
type Country struct {
	ISO  string
	Name string

	// Boolean indicators: coastal waters, small coastal waters state,
	// UN member, least developed, landlocked developing, small island
	// developing.
	CW      bool
	SmallCW bool
	UN      bool
	LDC     bool
	LLDC    bool
	SID     bool

	Region       string
	SubRegion    string
	LegalSystems []string

	Population float64
	HDI2015    float64
	GDPCapita  float64
	GHGNoLUCF  float64
	GHGLUCF    float64
}
