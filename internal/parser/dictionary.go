package parser

import "github.com/hyperjump/basho/internal/models"

// Dictionary is the static lookup data the parser matches against. It is
// built once at startup and never mutated afterward.
type Dictionary struct {
	// Facilities maps a canonical facility name to the trigger phrases
	// that imply it. Matching is case-insensitive substring; a canonical
	// name is added at most once per query.
	Facilities map[string][]string

	// Categories maps a category label to the keywords that select it.
	// Buckets are evaluated in CategoryOrder and the first hit wins.
	Categories    map[string][]string
	CategoryOrder []string
}

// DefaultDictionary returns the built-in facility and category vocabulary.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Facilities: map[string][]string{
			"whiteboard":         {"whiteboard", "white board"},
			"conference phone":   {"conference phone", "conference call", "speaker phone", "speakerphone", "polycom"},
			"video conferencing": {"video conferencing", "video conference", "video call", "zoom room", "teams room"},
			"projector":          {"projector", "projection"},
			"screen":             {"screen", "monitor", "television", "tv"},
			"standing desk":      {"standing desk", "sit-stand", "sit stand", "height adjustable"},
			"docking station":    {"docking station", "laptop dock"},
			"dual monitors":      {"dual monitor", "dual monitors", "two monitors", "dual screen"},
			"wheelchair access":  {"wheelchair", "accessible", "step-free"},
			"flip chart":         {"flip chart", "flipchart"},
			"hdmi":               {"hdmi"},
			"natural light":      {"natural light", "window", "daylight"},
		},
		Categories: map[string][]string{
			models.KindMeetingSpace: {"meeting", "conference", "boardroom", "board room", "huddle", "room"},
			models.KindDesk:         {"desk", "workstation", "hot desk", "hotdesk"},
			models.KindPod:          {"pod", "phone booth", "privacy booth"},
		},
		CategoryOrder: []string{models.KindMeetingSpace, models.KindDesk, models.KindPod},
	}
}
