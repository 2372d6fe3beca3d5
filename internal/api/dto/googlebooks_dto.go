package dto

import (
	"github.com/spec-kit/book-catalog/internal/googlebooks"
)

// GoogleBooksQuery carries the supported catalog lookup parameters.
type GoogleBooksQuery struct {
	Q            string `query:"q"`
	MaxResults   int    `query:"maxResults"`
	StartIndex   int    `query:"startIndex"`
	Filter       string `query:"filter"`
	PrintType    string `query:"printType"`
	OrderBy      string `query:"orderBy"`
	LangRestrict string `query:"langRestrict"`
	Projection   string `query:"projection"`
}

// Validate returns field-level errors, empty when the query is valid.
func (q GoogleBooksQuery) Validate() FieldErrors {
	fe := FieldErrors{}
	requireString(fe, "q", q.Q)
	if q.MaxResults < 0 || q.MaxResults > 40 {
		fe.add("maxResults", "Ensure this value is between 1 and 40.")
	}
	if q.StartIndex < 0 {
		fe.add("startIndex", "Ensure this value is greater than or equal to 0.")
	}
	checkChoice(fe, "filter", q.Filter, []string{"ebooks", "free-ebooks", "paid-ebooks", "partial"})
	checkChoice(fe, "printType", q.PrintType, []string{"all", "books", "magazines"})
	checkChoice(fe, "orderBy", q.OrderBy, []string{"relevance", "newest"})
	checkMaxLen(fe, "langRestrict", q.LangRestrict, 10)
	checkChoice(fe, "projection", q.Projection, []string{"full", "lite"})
	return fe
}

// SearchQuery converts the query into the client's shape, applying the
// default page size.
func (q GoogleBooksQuery) SearchQuery() googlebooks.SearchQuery {
	maxResults := q.MaxResults
	if maxResults == 0 {
		maxResults = 10
	}
	return googlebooks.SearchQuery{
		Query:        q.Q,
		MaxResults:   maxResults,
		StartIndex:   q.StartIndex,
		Filter:       q.Filter,
		PrintType:    q.PrintType,
		OrderBy:      q.OrderBy,
		LangRestrict: q.LangRestrict,
		Projection:   q.Projection,
	}
}
