package dto

import (
	"fmt"
	"strconv"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/explorer"
	"github.com/eaudeweb/lawkit/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// ParseSearchRequest reads the legislation search parameters off the request.
// Identifier and year parameters must be numeric; everything else passes
// through as-is and is validated further down the pipeline.
func ParseSearchRequest(c echo.Context) (*explorer.Request, error) {
	params := c.QueryParams()

	classificationIDs, err := idList(params, "classifications")
	if err != nil {
		return nil, err
	}
	tagIDs, err := idList(params, "tags")
	if err != nil {
		return nil, err
	}

	fromYear, err := yearParam(c, "from_year")
	if err != nil {
		return nil, err
	}
	toYear, err := yearParam(c, "to_year")
	if err != nil {
		return nil, err
	}

	return &explorer.Request{
		Text:              c.QueryParam("q"),
		ClassificationIDs: classificationIDs,
		TagIDs:            tagIDs,
		Countries:         multiValue(params, "countries"),
		CountryMeta:       params,
		LawTypes:          multiValue(params, "law_types"),
		FromYear:          fromYear,
		ToYear:            toYear,
		Page:              c.QueryParam("page"),
		PromulgationSort:  c.QueryParam("promulgation_sort"),
		CountrySort:       c.QueryParam("country_sort"),
	}, nil
}

func idList(params map[string][]string, name string) ([]int64, error) {
	var ids []int64
	for _, raw := range multiValue(params, name) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperr.NewValidationWrap(
				fmt.Sprintf("%s must contain numeric identifiers", name), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func yearParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.NewValidationWrap(
			fmt.Sprintf("%s must be a year", name), err)
	}
	return &year, nil
}

// multiValue reads a repeated parameter, accepting both the bare name and
// the jQuery-style "name[]" spelling.
func multiValue(params map[string][]string, name string) []string {
	if vs := params[name+"[]"]; len(vs) > 0 {
		return vs
	}
	return params[name]
}

// ArticleResponse is one highlighted article in a result law.
type ArticleResponse struct {
	ID              int64    `json:"id"`
	Code            string   `json:"code"`
	Text            string   `json:"text"`
	Classifications []string `json:"classifications,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// LawResponse is one law in the search result payload. Text fields carry
// <em> match markers on the relevance path.
type LawResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Abstract    string `json:"abstract,omitempty"`
	PDFText     string `json:"pdf_text,omitempty"`
	CountryISO  string `json:"country_iso"`
	CountryName string `json:"country_name"`
	LawType     string `json:"law_type"`
	Year        int    `json:"year"`

	Classifications []string `json:"classifications,omitempty"`
	Tags            []string `json:"tags,omitempty"`

	Articles []ArticleResponse `json:"articles,omitempty"`
}

// SearchResponse is one page of results with pagination metadata.
type SearchResponse struct {
	Items      []LawResponse `json:"items"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"total_pages"`
	Total      int64         `json:"total"`
}

func NewSearchResponse(page *pagination.Page[explorer.LawResult]) *SearchResponse {
	items := make([]LawResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, newLawResponse(r))
	}
	return &SearchResponse{
		Items:      items,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: page.TotalPages,
		Total:      page.TotalCount,
	}
}

func newLawResponse(r explorer.LawResult) LawResponse {
	out := LawResponse{
		ID:              r.ID,
		Title:           r.Title,
		Abstract:        r.Abstract,
		PDFText:         r.PDFText,
		CountryISO:      r.CountryISO,
		CountryName:     r.CountryName,
		LawType:         r.LawType,
		Year:            r.Year,
		Classifications: r.Classifications,
		Tags:            r.Tags,
	}
	for _, a := range r.Articles {
		out.Articles = append(out.Articles, ArticleResponse{
			ID:              a.ID,
			Code:            a.Code,
			Text:            a.Text,
			Classifications: a.Classifications,
			Tags:            a.Tags,
		})
	}
	return out
}
