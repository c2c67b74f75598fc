package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/adstools/astroref/internal/ads"
)

const (
	// Title truncation length in result summaries
	SearchTitleMaxLen = 70
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
}

// SearchResponse wraps a result list for JSON output.
type SearchResponse struct {
	Total int       `json:"total"`
	Docs  []ads.Doc `json:"docs"`
}

// printDocsHuman prints search results in human-readable format.
func printDocsHuman(docs []ads.Doc) {
	if len(docs) == 0 {
		fmt.Println("No papers found")
		return
	}
	fmt.Printf("Found %d papers\n\n", len(docs))
	for i, d := range docs {
		fmt.Print(formatDocHuman(d, i+1))
		fmt.Println()
	}
}

// formatDocHuman formats one document for human-readable output.
func formatDocHuman(d ads.Doc, index int) string {
	var sb strings.Builder
	title := ""
	if len(d.Title) > 0 {
		title = d.Title[0]
	}
	if index > 0 {
		sb.WriteString(fmt.Sprintf("%d. %s\n", index, truncateString(title, SearchTitleMaxLen)))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", truncateString(title, SearchTitleMaxLen)))
	}
	sb.WriteString(fmt.Sprintf("   %s (%s)", formatAuthorsShort(d.Author, 3), d.Year))
	if len(d.Bibstem) > 0 {
		sb.WriteString(fmt.Sprintf(" - %s", d.Bibstem[0]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("   %s", d.Bibcode))
	if d.CitationCount > 0 {
		sb.WriteString(fmt.Sprintf(" | Citations: %d", d.CitationCount))
	}
	sb.WriteString("\n")
	return sb.String()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
// ADS author strings are already "Last, First".
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, "; ")
}
