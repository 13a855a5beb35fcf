package domain

// TaxonomyClassification is a hierarchical classification label. Level 0
// entries are the top of the hierarchy; Parent is nil for them.
type TaxonomyClassification struct {
	ID     int64
	Name   string
	Code   string
	Level  int
	Parent *int64
}

// TaxonomyTagGroup groups cross-cutting category tags.
type TaxonomyTagGroup struct {
	ID   int64
	Name string
}

// TaxonomyTag is a cross-cutting category label belonging to one group.
type TaxonomyTag struct {
	ID      int64
	Name    string
	GroupID int64
}
