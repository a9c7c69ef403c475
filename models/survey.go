package models

import (
	"fmt"
	"sort"
	"time"
)

// RawResponse holds one unprocessed survey row exactly as read from the
// source, keyed by short field name. It is turned into a SurveyRecord by
// the cleaner.
type RawResponse struct {
	Row    int
	Fields map[string]string
}

// Get returns the raw cell for a short field name, or "" when absent.
func (r *RawResponse) Get(key string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// EntryModes records how a respondent usually enters the town.
type EntryModes struct {
	Car   bool
	Bus   bool
	Train bool
	Bike  bool
	Walk  bool
}

// Reasons records why a respondent makes the journey.
type Reasons struct {
	Work     bool
	Kids     bool
	Pleasure bool
	Other    bool
}

// SurveyRecord is one respondent's cleaned answers.
type SurveyRecord struct {
	SubmittedAt time.Time
	Region      string
	Frequency   string
	Modes       EntryModes
	Reasons     Reasons
	Congestion  int
	Support     string

	// Price is the stated maximum daily charge. A zero with PriceAnswered
	// set means "would stop driving at any price"; PriceAnswered false
	// means the question was left blank.
	Price         float64
	PriceAnswered bool
}

// NoCar reports whether the respondent does not usually drive in.
func (r SurveyRecord) NoCar() bool {
	return !r.Modes.Car
}

// CarPlus reports whether the respondent drives and also uses at least one
// other mode.
func (r SurveyRecord) CarPlus() bool {
	m := r.Modes
	return m.Car && (m.Bus || m.Train || m.Bike || m.Walk)
}

// Supports reports whether the support answer is exactly "Yes".
func (r SurveyRecord) Supports() bool {
	return r.Support == SupportYes
}

// SupportYes is the only answer counted as support for pricing.
const SupportYes = "Yes"

// NoAnswer labels a categorical question left blank.
const NoAnswer = "No answer"

// SurveyTable is the ordered, read-only set of respondents for one run.
type SurveyTable struct {
	Records []SurveyRecord
}

// NewSurveyTable copies records into a new table.
func NewSurveyTable(records []SurveyRecord) *SurveyTable {
	cp := make([]SurveyRecord, len(records))
	copy(cp, records)
	return &SurveyTable{Records: cp}
}

// Len returns the number of respondents.
func (t *SurveyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Regions returns the distinct region answers in ascending order.
func (t *SurveyTable) Regions() []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, r := range t.Records {
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		regions = append(regions, r.Region)
	}
	sort.Strings(regions)
	return regions
}

// FilterRegion returns the respondents living in region.
func (t *SurveyTable) FilterRegion(region string) *SurveyTable {
	out := &SurveyTable{}
	for _, r := range t.Records {
		if r.Region == region {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// frequencyLevels is the ordinal vocabulary for "How often do you enter
// Howth?", lowest first. Encoded values are index+1.
var frequencyLevels = []string{
	"Rarely or never",
	"Once a month",
	"Once a week",
	"A few times a week",
	"Every weekday",
	"Daily",
}

// EncodeFrequency maps a frequency answer to 1..6.
func EncodeFrequency(s string) (int, error) {
	for i, level := range frequencyLevels {
		if level == s {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("frequency %q: %w", s, ErrUnknownCategory)
}
