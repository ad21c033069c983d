// Package parser turns a free-text space request into a canonical
// requirement set. Parsing is pure and best-effort: a fragment that fails
// to match any pattern leaves the corresponding field absent, never errors.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/basho/internal/models"
)

// Capacity patterns, tried in priority order; the first match wins.
var capacityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d+)\s*(?:people|persons?|attendees?|pax)\b`),
	regexp.MustCompile(`(?i)\b(?:capacity|seats?|seating)\s*(?:of|for)?\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*seats?\b`),
	regexp.MustCompile(`(?i)\bfor\s+(\d+)\b`),
}

// screenSizePattern injects a synthetic `<N>" screen` facility term.
var screenSizePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:"|''|inch(?:es)?)?\s*(?:screen|monitor|display|tv)\b`)

// Location-hint families. The full matched substring is kept, not just the
// captured group, so "3rd floor" survives as written.
var hintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:\d+(?:st|nd|rd|th)?|ground|top)\s+floor\b`),
	regexp.MustCompile(`(?i)\bfloor\s+\d+\b`),
	regexp.MustCompile(`(?i)\bbuilding\s+[\w-]+\b`),
	regexp.MustCompile(`(?i)\b(?:zone|wing|area)\s+[\w-]+\b`),
	regexp.MustCompile(`(?i)\bnear\s+(?:the\s+)?[a-z]+\b`),
	regexp.MustCompile(`(?i)\broom\s+[\w-]+\b`),
}

// hintStopwords prunes hint matches whose trailing token is filler rather
// than a place name ("room for ...", "near a ...").
var hintStopwords = map[string]bool{
	"for": true, "with": true, "that": true, "on": true, "at": true,
	"to": true, "a": true, "an": true, "me": true, "us": true,
}

var (
	datePattern    = regexp.MustCompile(`(?i)\bon\s+(\d{4}-\d{2}-\d{2})\b`)
	hoursPattern   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*h(?:ou)?rs?\b`)
	minutesPattern = regexp.MustCompile(`(?i)\b(\d+)\s*min(?:ute)?s?\b`)

	// durationPhrase masks "2 hours" / "30 mins" runs before capacity
	// extraction so that "desk for 2 hours" does not read as capacity 2.
	durationPhrase = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:h(?:ou)?rs?|min(?:ute)?s?)\b`)
)

// Default booking window applied when only a date is given.
const (
	defaultDayStart = "T09:00:00.000"
	defaultDayEnd   = "T18:00:00.000"
)

// Parser extracts structured requirements from free text using an
// immutable dictionary.
type Parser struct {
	dict *Dictionary
}

// New creates a parser. A nil dictionary falls back to the built-in one.
func New(dict *Dictionary) *Parser {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Parser{dict: dict}
}

// Parse derives the canonical requirement set from query. It is
// deterministic, performs no I/O, and never returns an error: ambiguity
// degrades to absent fields.
func (p *Parser) Parse(query string) *models.ParsedRequirements {
	req := &models.ParsedRequirements{}
	query = strings.TrimSpace(query)
	if query == "" {
		return req
	}
	lower := strings.ToLower(query)

	req.Capacity = extractCapacity(lower)
	req.Facilities = p.extractFacilities(lower)
	req.LocationHints = extractHints(query)
	req.Category = p.inferCategory(lower)
	req.TimeConstraints = extractTime(lower)

	return req
}

func extractCapacity(lower string) *int {
	lower = durationPhrase.ReplaceAllString(lower, " ")
	for _, pat := range capacityPatterns {
		m := pat.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return &n
	}
	return nil
}

func (p *Parser) extractFacilities(lower string) []string {
	var out []string
	seen := make(map[string]bool)

	// Dictionary order must not leak into the result set, but first-mention
	// position should. Record the earliest trigger position per canonical
	// name and sort by it.
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for canonical, triggers := range p.dict.Facilities {
		best := -1
		for _, trigger := range triggers {
			if pos := strings.Index(lower, trigger); pos >= 0 && (best < 0 || pos < best) {
				best = pos
			}
		}
		if best >= 0 && !seen[canonical] {
			seen[canonical] = true
			hits = append(hits, hit{canonical, best})
		}
	}
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].pos < hits[i].pos {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}
	for _, h := range hits {
		out = append(out, h.name)
	}

	// Screen-size mentions become a synthetic sized term alongside any
	// generic screen facility.
	if m := screenSizePattern.FindStringSubmatch(lower); m != nil {
		term := fmt.Sprintf("%s\" screen", m[1])
		if !seen[term] {
			out = append(out, term)
		}
	}
	return out
}

func extractHints(query string) []string {
	type hit struct {
		text string
		pos  int
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, pat := range hintPatterns {
		for _, loc := range pat.FindAllStringIndex(query, -1) {
			text := strings.TrimSpace(query[loc[0]:loc[1]])
			fields := strings.Fields(strings.ToLower(text))
			last := fields[len(fields)-1]
			if hintStopwords[last] {
				continue
			}
			key := strings.ToLower(text)
			if seen[key] {
				continue
			}
			seen[key] = true
			hits = append(hits, hit{text, loc[0]})
		}
	}
	// Preserve order of appearance across pattern families.
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].pos < hits[i].pos {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.text)
	}
	return out
}

func (p *Parser) inferCategory(lower string) string {
	for _, category := range p.dict.CategoryOrder {
		for _, keyword := range p.dict.Categories[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return ""
}

func extractTime(lower string) *models.TimeConstraints {
	var tc models.TimeConstraints

	if m := datePattern.FindStringSubmatch(lower); m != nil {
		tc.DateFrom = m[1] + defaultDayStart
		tc.DateTo = m[1] + defaultDayEnd
	}
	if m := hoursPattern.FindStringSubmatch(lower); m != nil {
		if hours, err := strconv.ParseFloat(m[1], 64); err == nil && hours > 0 {
			tc.Duration = int(hours * 60)
		}
	} else if m := minutesPattern.FindStringSubmatch(lower); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil && mins > 0 {
			tc.Duration = mins
		}
	}

	if tc.DateFrom == "" && tc.Duration == 0 {
		return nil
	}
	return &tc
}

// Requirements builds the final requirement set for a request: parse the
// free-text query, then let explicit request fields overwrite whatever
// parsing produced for the same field.
func (p *Parser) Requirements(req *models.SearchRequest) *models.ParsedRequirements {
	parsed := p.Parse(req.Query)

	if req.Capacity > 0 {
		capacity := req.Capacity
		parsed.Capacity = &capacity
	}
	if len(req.Requirements) > 0 {
		merged := make([]string, 0, len(req.Requirements)+len(parsed.Facilities))
		seen := make(map[string]bool)
		for _, term := range req.Requirements {
			key := strings.ToLower(strings.TrimSpace(term))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, strings.TrimSpace(term))
		}
		for _, term := range parsed.Facilities {
			if !seen[strings.ToLower(term)] {
				seen[strings.ToLower(term)] = true
				merged = append(merged, term)
			}
		}
		parsed.Facilities = merged
	}
	if req.LocationKind != "" {
		parsed.Category = req.LocationKind
	}
	if req.HasTimeWindow() {
		if parsed.TimeConstraints == nil {
			parsed.TimeConstraints = &models.TimeConstraints{}
		}
		parsed.TimeConstraints.DateFrom = req.DateFrom
		parsed.TimeConstraints.DateTo = req.DateTo
	}
	return parsed
}
