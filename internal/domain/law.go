package domain

import "time"

// LawType is the legislation document type code.
type LawType string

const (
	LawTypeLaw          LawType = "Law"
	LawTypeConstitution LawType = "Constitution"
	LawTypeRegulation   LawType = "Regulation"
	LawTypeOther        LawType = "oth"
)

// LawTypes lists the selectable legislation types in display order.
var LawTypes = []LawType{
	LawTypeLaw,
	LawTypeConstitution,
	LawTypeRegulation,
	LawTypeOther,
}

// Legislation is a law/constitution/regulation record as read from the
// relational store. Classification and tag name lists are denormalized so
// the index projection and the result payload never need extra lookups.
type Legislation struct {
	ID          int64
	Title       string
	Abstract    string
	PDFText     string
	CountryISO  string
	CountryName string
	LawType     LawType

	// Year is the adoption year. YearAmendment and YearMentions carry
	// amendment years and years mentioned in the text.
	Year          int
	YearAmendment []int
	YearMentions  []int

	Classifications []string
	Tags            []string

	CreatedAt time.Time
}

// Article belongs to exactly one Legislation record and is deleted with it.
type Article struct {
	ID            int64
	LegislationID int64
	Code          string
	Text          string

	Classifications []string
	Tags            []string
}
