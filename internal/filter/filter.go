package filter

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/domain"
)

// Predicate is one country-metadata filter condition.
type Predicate func(*domain.Country) bool

// Build translates request parameters into the predicate set for all
// descriptors that were supplied. An absent parameter contributes nothing.
// A malformed boolean or an out-of-range bucket index is a validation
// error, never a silent default.
func Build(params url.Values) ([]Predicate, error) {
	var preds []Predicate

	for i := range Fields {
		d := &Fields[i]
		switch d.Kind {
		case KindBool:
			raw := params.Get(d.Name)
			if raw == "" {
				continue
			}
			want, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, apperr.NewValidationWrap(
					fmt.Sprintf("%s must be a boolean", d.Name), err)
			}
			preds = append(preds, func(c *domain.Country) bool {
				return d.Bool(c) == want
			})
		case KindList:
			names := list(params, d.Name)
			if len(names) == 0 {
				continue
			}
			preds = append(preds, func(c *domain.Country) bool {
				for _, have := range d.List(c) {
					if slices.Contains(names, have) {
						return true
					}
				}
				return false
			})
		case KindRange:
			raw := params.Get(d.Name)
			if raw == "" {
				continue
			}
			idx, err := strconv.Atoi(raw)
			if err != nil {
				return nil, apperr.NewValidationWrap(
					fmt.Sprintf("%s must be a bucket index", d.Name), err)
			}
			bucket, ok := d.Buckets.At(idx)
			if !ok {
				return nil, apperr.NewValidation(
					fmt.Sprintf("%s index out of range", d.Name))
			}
			preds = append(preds, func(c *domain.Country) bool {
				v := d.Value(c)
				return v >= bucket.Min && v <= bucket.Max
			})
		}
	}

	return preds, nil
}

// Apply returns the countries satisfying all predicates. An empty predicate
// set returns the input unchanged.
func Apply(countries []domain.Country, preds []Predicate) []domain.Country {
	if len(preds) == 0 {
		return countries
	}
	var out []domain.Country
	for i := range countries {
		ok := true
		for _, p := range preds {
			if !p(&countries[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, countries[i])
		}
	}
	return out
}

// list reads a multi-valued parameter, accepting both the bare name and the
// jQuery-style "name[]" spelling.
func list(params url.Values, name string) []string {
	if vs := params[name+"[]"]; len(vs) > 0 {
		return vs
	}
	return params[name]
}
