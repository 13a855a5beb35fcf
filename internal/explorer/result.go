package explorer

import "github.com/eaudeweb/lawkit/internal/domain"

// HighlightedArticle is one article of a result law, with match markers
// embedded in the rendered fields.
type HighlightedArticle struct {
	ID              int64
	Code            string
	Text            string
	Classifications []string
	Tags            []string
}

// LawResult is one law in a result page. On the relevance path the text
// fields carry <em> match markers and snippet windows; on the explicit-sort
// path they are the stored values unchanged.
type LawResult struct {
	ID          int64
	Title       string
	Abstract    string
	PDFText     string
	CountryISO  string
	CountryName string
	LawType     string
	Year        int

	Classifications []string
	Tags            []string

	Articles []HighlightedArticle
}

// plainResult renders a law without any match decoration.
func plainResult(law domain.Legislation) LawResult {
	return LawResult{
		ID:              law.ID,
		Title:           law.Title,
		Abstract:        law.Abstract,
		CountryISO:      law.CountryISO,
		CountryName:     law.CountryName,
		LawType:         string(law.LawType),
		Year:            law.Year,
		Classifications: law.Classifications,
		Tags:            law.Tags,
	}
}
