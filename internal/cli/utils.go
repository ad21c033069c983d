// Package cli provides CLI utilities for Basho.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d matching locations in %dms (%d searched, showing %d)\n\n",
		response.TotalMatches, response.Metadata.SearchTimeMs,
		response.Metadata.LocationsSearched, len(response.Results))
	for rank, result := range response.Results {
		writeOneResult(w, rank+1, result)
	}
	if len(response.Suggestions) > 0 {
		fmt.Fprintln(w, "Suggestions:")
		for _, s := range response.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
		fmt.Fprintln(w)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.ScoredCandidate) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", rank, result.Score)
	loc := result.Location
	name := loc.Name
	if loc.QualifiedName != "" {
		name = loc.QualifiedName
	}
	fmt.Fprintf(w, "%s (%s, id %s)\n", name, loc.Kind, loc.ID)
	if loc.Description != "" {
		fmt.Fprintf(w, "%s\n", TruncateWords(loc.Description, descriptionMaxWords))
	}
	if result.CapacityInfo != nil {
		fmt.Fprintf(w, "Capacity: %d requested, %d available\n",
			result.CapacityInfo.Requested, result.CapacityInfo.Actual)
	}
	if result.Availability != nil {
		status := "unavailable"
		if result.Availability.IsAvailable {
			status = "available"
		}
		if result.Availability.Note != "" {
			status += " (" + result.Availability.Note + ")"
		}
		fmt.Fprintf(w, "Availability: %s\n", status)
	}
	for _, detail := range result.MatchDetails {
		fmt.Fprintf(w, "  - %s\n", detail)
	}
	fmt.Fprintln(w)
}

// descriptionMaxWords bounds how much of a location description the text
// format shows per result.
const descriptionMaxWords = 20

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
