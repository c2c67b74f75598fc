// Package ads provides a client for the NASA/SAO Astrophysics Data System
// search and export APIs.
package ads

// Doc is one bibliographic record as returned by the ADS search endpoint.
// Fields mirror the default field list requested by the client; absent
// fields unmarshal to their zero values.
type Doc struct {
	Bibcode          string   `json:"bibcode"`
	Title            []string `json:"title,omitempty"`
	Author           []string `json:"author,omitempty"`
	Year             string   `json:"year,omitempty"`
	Abstract         string   `json:"abstract,omitempty"`
	Pubdate          string   `json:"pubdate,omitempty"`
	Bibstem          []string `json:"bibstem,omitempty"`
	AlternateBibcode []string `json:"alternate_bibcode,omitempty"`
	CitationCount    int      `json:"citation_count,omitempty"`
	Identifier       []string `json:"identifier,omitempty"`
	Reference        []string `json:"reference,omitempty"`
}

// searchResponse is the envelope of a /search/query response. A body
// without the "response" key signals a failed query.
type searchResponse struct {
	Response *searchResult `json:"response"`
	Error    *apiMessage   `json:"error"`
}

type searchResult struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

type apiMessage struct {
	Msg string `json:"msg"`
}

// exportResponse is the body of a /export/bibtex response.
type exportResponse struct {
	Export string `json:"export"`
	Error  string `json:"error"`
}

// RateLimitState holds the most recently observed X-RateLimit headers.
// Purely observability state: the client never throttles on it.
type RateLimitState struct {
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}
