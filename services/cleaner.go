package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"howth-congestion/models"
	"howth-congestion/storage"
	"howth-congestion/utils"
)

var (
	// priceRegexp captures the numeric part of a price answer such as "€5" or "5.50"
	priceRegexp = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
	// ratingRegexp captures a whole 1-5 rating, optionally written as "4.0"
	ratingRegexp = regexp.MustCompile(`^([1-5])(?:\.0+)?$`)
)

// timestampLayouts are the submission time formats seen in form exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02",
}

// Cleaner transforms RawResponses into a validated SurveyTable.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every raw row. The first unparseable cell aborts the load.
func (c *Cleaner) Clean(raw []*models.RawResponse) (*models.SurveyTable, error) {
	records := make([]models.SurveyRecord, 0, len(raw))
	blankPrices, badTimestamps := 0, 0
	var first, last time.Time

	for _, r := range raw {
		rec, err := c.parse(r)
		if err != nil {
			return nil, fmt.Errorf("[cleaner] row %d: %w", r.Row, err)
		}
		if !rec.PriceAnswered {
			blankPrices++
		}
		if rec.SubmittedAt.IsZero() {
			if r.Get(storage.KeyTimestamp) != "" {
				badTimestamps++
			}
		} else {
			if first.IsZero() || rec.SubmittedAt.Before(first) {
				first = rec.SubmittedAt
			}
			if rec.SubmittedAt.After(last) {
				last = rec.SubmittedAt
			}
		}
		records = append(records, rec)
	}

	if blankPrices > 0 {
		c.logger.Debug("[cleaner] %d respondents left the price question blank", blankPrices)
	}
	if badTimestamps > 0 {
		c.logger.Warn("[cleaner] %d submission timestamps could not be parsed", badTimestamps)
	}
	if !first.IsZero() {
		c.logger.Info("[cleaner] Responses submitted between %s and %s",
			first.Format(time.RFC3339), last.Format(time.RFC3339))
	}
	c.logger.Info("[cleaner] Cleaned %d survey responses", len(records))
	return models.NewSurveyTable(records), nil
}

func (c *Cleaner) parse(r *models.RawResponse) (models.SurveyRecord, error) {
	rec := models.SurveyRecord{
		Region:    categoryOrBlank(r.Get(storage.KeyRegion)),
		Frequency: categoryOrBlank(r.Get(storage.KeyFrequency)),
		Support:   categoryOrBlank(r.Get(storage.KeySupport)),
	}

	if ts := r.Get(storage.KeyTimestamp); ts != "" {
		rec.SubmittedAt, _ = parseTimestamp(ts)
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{storage.KeyCar, &rec.Modes.Car},
		{storage.KeyBus, &rec.Modes.Bus},
		{storage.KeyTrain, &rec.Modes.Train},
		{storage.KeyBike, &rec.Modes.Bike},
		{storage.KeyWalk, &rec.Modes.Walk},
		{storage.KeyWork, &rec.Reasons.Work},
		{storage.KeyKids, &rec.Reasons.Kids},
		{storage.KeyPleasure, &rec.Reasons.Pleasure},
		{storage.KeyOtherReason, &rec.Reasons.Other},
	}
	for _, f := range flags {
		b, err := parseFlag(r.Get(f.key))
		if err != nil {
			return rec, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = b
	}

	rating, err := parseRating(r.Get(storage.KeyCongestion))
	if err != nil {
		return rec, fmt.Errorf("%s: %w", storage.KeyCongestion, err)
	}
	rec.Congestion = rating

	price, answered, err := parsePrice(r.Get(storage.KeyPrice))
	if err != nil {
		return rec, fmt.Errorf("%s: %w", storage.KeyPrice, err)
	}
	rec.Price, rec.PriceAnswered = price, answered

	return rec, nil
}

// parseFlag reads a checkbox cell. Blank means unticked.
func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false", "no", "0", "f", "n":
		return false, nil
	case "true", "yes", "1", "t", "y":
		return true, nil
	}
	return false, fmt.Errorf("flag %q: %w", raw, models.ErrInvalidValue)
}

// parseRating reads the 1-5 congestion score.
func parseRating(raw string) (int, error) {
	match := ratingRegexp.FindStringSubmatch(strings.TrimSpace(raw))
	if len(match) < 2 {
		return 0, fmt.Errorf("rating %q outside 1-5: %w", raw, models.ErrInvalidValue)
	}
	return strconv.Atoi(match[1])
}

// parsePrice extracts the stated maximum price. A blank cell is reported
// as unanswered; "0" is an answer.
// Examples:
//
//	"€5"   → 5, true
//	"2,50" → 2.5, true
//	""     → 0, false
func parsePrice(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	match := priceRegexp.FindString(raw)
	if match == "" {
		return 0, false, fmt.Errorf("price %q: %w", raw, models.ErrInvalidValue)
	}
	val, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil || val < 0 {
		return 0, false, fmt.Errorf("price %q: %w", raw, models.ErrInvalidValue)
	}
	return val, true, nil
}

// parseTimestamp tries each known export layout in turn.
func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// categoryOrBlank collapses whitespace and labels blank answers.
func categoryOrBlank(s string) string {
	s = normaliseText(s)
	if s == "" {
		return models.NoAnswer
	}
	return s
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
