package es

import (
	"strings"
	"time"

	"github.com/eaudeweb/lawkit/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// ArticleDoc is the nested article sub-document. The parent_* fields carry
// the owning law's taxonomy lists, copied in at index-build time so nested
// facet queries can match either level without leaving the articles path.
type ArticleDoc struct {
	PK                    int64  `json:"pk"`
	Code                  string `json:"code"`
	Text                  string `json:"text"`
	ClassificationsText   string `json:"classifications_text"`
	TagsText              string `json:"tags_text"`
	ParentClassifications string `json:"parent_classifications"`
	ParentTags            string `json:"parent_tags"`
}

// LawDocument is the index projection of a legislation record. Taxonomy name
// lists are flattened into single token-joined strings so exact-phrase
// highlighting with zero fragments returns the whole list, which the read
// path splits apart again. The article_* fields pre-aggregate the names of
// all child articles onto the document.
type LawDocument struct {
	ID                     int64  `json:"id"`
	Title                  string `json:"title"`
	Abstract               string `json:"abstract"`
	PDFText                string `json:"pdf_text"`
	Country                string `json:"country"`
	CountryName            string `json:"country_name"`
	LawType                string `json:"law_type"`
	Year                   int    `json:"year"`
	YearAmendment          []int  `json:"year_amendment"`
	YearMentions           []int  `json:"year_mentions"`
	Classifications        string `json:"classifications"`
	Tags                   string `json:"tags"`
	ArticleClassifications string `json:"article_classifications"`
	ArticleTags            string `json:"article_tags"`

	Articles []ArticleDoc `json:"articles"`

	IndexedAt time.Time `json:"indexed_at"`
}

// IndexBuilder maps domain records to index documents and owns the index
// settings and mapping.
type IndexBuilder struct {
	joinToken string
}

func NewIndexBuilder(joinToken string) *IndexBuilder {
	return &IndexBuilder{joinToken: joinToken}
}

// BuildDocument projects a law and its articles into one index document.
// A stored law whose text, taxonomy or country changed must be re-projected
// through this, or the index is stale.
func (b *IndexBuilder) BuildDocument(law domain.Legislation, articles []domain.Article) LawDocument {
	doc := LawDocument{
		ID:              law.ID,
		Title:           law.Title,
		Abstract:        law.Abstract,
		PDFText:         law.PDFText,
		Country:         law.CountryISO,
		CountryName:     law.CountryName,
		LawType:         string(law.LawType),
		Year:            law.Year,
		YearAmendment:   law.YearAmendment,
		YearMentions:    law.YearMentions,
		Classifications: b.join(law.Classifications),
		Tags:            b.join(law.Tags),
		IndexedAt:       time.Now(),
	}

	var articleClassifications, articleTags []string
	for _, a := range articles {
		doc.Articles = append(doc.Articles, ArticleDoc{
			PK:                    a.ID,
			Code:                  a.Code,
			Text:                  a.Text,
			ClassificationsText:   b.join(a.Classifications),
			TagsText:              b.join(a.Tags),
			ParentClassifications: doc.Classifications,
			ParentTags:            doc.Tags,
		})
		articleClassifications = appendMissing(articleClassifications, a.Classifications)
		articleTags = appendMissing(articleTags, a.Tags)
	}
	doc.ArticleClassifications = b.join(articleClassifications)
	doc.ArticleTags = b.join(articleTags)

	return doc
}

func (b *IndexBuilder) join(names []string) string {
	return strings.Join(names, b.joinToken)
}

func appendMissing(dst []string, names []string) []string {
	for _, name := range names {
		found := false
		for _, have := range dst {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, name)
		}
	}
	return dst
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				"legislation_analyzer": types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	articles := types.NewNestedProperty()
	articles.Properties = map[string]types.Property{
		"pk":                     types.NewLongNumberProperty(),
		"code":                   types.NewKeywordProperty(),
		"text":                   b.createTextProperty("legislation_analyzer"),
		"classifications_text":   b.createTextProperty("legislation_analyzer"),
		"tags_text":              b.createTextProperty("legislation_analyzer"),
		"parent_classifications": b.createTextProperty("legislation_analyzer"),
		"parent_tags":            b.createTextProperty("legislation_analyzer"),
	}

	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":                      types.NewLongNumberProperty(),
			"title":                   b.createTextProperty("legislation_analyzer"),
			"abstract":                b.createTextProperty("legislation_analyzer"),
			"pdf_text":                b.createTextProperty("legislation_analyzer"),
			"country":                 types.NewKeywordProperty(),
			"country_name":            types.NewKeywordProperty(),
			"law_type":                types.NewKeywordProperty(),
			"year":                    types.NewIntegerNumberProperty(),
			"year_amendment":          types.NewIntegerNumberProperty(),
			"year_mentions":           types.NewIntegerNumberProperty(),
			"classifications":         b.createTextProperty("legislation_analyzer"),
			"tags":                    b.createTextProperty("legislation_analyzer"),
			"article_classifications": b.createTextProperty("legislation_analyzer"),
			"article_tags":            b.createTextProperty("legislation_analyzer"),
			"articles":                articles,
			"indexed_at":              types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}
