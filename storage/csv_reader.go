package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"howth-congestion/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a CSV file held as named string columns.
type table struct {
	names []string
	cols  map[string][]string
	nrow  int
}

func (t *table) col(name string) []string { return t.cols[name] }

// readTable loads a CSV file with every column kept as raw strings. A file
// holding only a header row yields a table with no rows.
func readTable(r io.Reader) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	t := &table{cols: make(map[string][]string)}
	if len(records) == 0 {
		return t, nil
	}
	if len(records) == 1 {
		t.names = records[0]
		for _, n := range t.names {
			t.cols[n] = nil
		}
		return t, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csv: parse: %w", df.Err)
	}
	t.names = df.Names()
	t.nrow = df.Nrow()
	for _, n := range t.names {
		t.cols[n] = df.Col(n).Records()
	}
	return t, nil
}

// CSVSurveyReader reads survey responses from a form export.
type CSVSurveyReader struct {
	path string
	file *os.File
}

// NewCSVSurveyReader opens the survey export at path.
func NewCSVSurveyReader(path string) (*CSVSurveyReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open survey %q: %w", path, err)
	}
	return &CSVSurveyReader{path: path, file: f}, nil
}

// ReadRaw checks the header contract and returns one RawResponse per row.
func (c *CSVSurveyReader) ReadRaw() ([]*models.RawResponse, error) {
	return ParseSurveyCSV(c.file, c.path)
}

// Close closes the underlying file.
func (c *CSVSurveyReader) Close() error {
	return c.file.Close()
}

// ParseSurveyCSV reads a survey export from r. source names the input in
// errors.
func ParseSurveyCSV(r io.Reader, source string) ([]*models.RawResponse, error) {
	tbl, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	if missing := missingHeaders(tbl.names, requiredSurveyHeaders()); len(missing) > 0 {
		return nil, &models.SchemaMismatchError{Source: source, Missing: missing}
	}

	have := make(map[string]struct{})
	for _, n := range tbl.names {
		have[n] = struct{}{}
	}
	columns := make(map[string][]string, len(SurveyColumns))
	for _, c := range SurveyColumns {
		if _, ok := have[c.Header]; !ok {
			continue
		}
		columns[c.Key] = tbl.col(c.Header)
	}

	rows := make([]*models.RawResponse, tbl.nrow)
	for i := range rows {
		fields := make(map[string]string, len(columns))
		for key, values := range columns {
			fields[key] = strings.TrimSpace(values[i])
		}
		rows[i] = &models.RawResponse{Row: i + 1, Fields: fields}
	}
	return rows, nil
}

// ReadTrafficFiles loads each traffic count file in order.
func ReadTrafficFiles(paths []string) ([]*models.TrafficCountSeries, error) {
	out := make([]*models.TrafficCountSeries, 0, len(paths))
	for _, p := range paths {
		s, err := ReadTrafficCSV(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadTrafficCSV loads one traffic count file. The series is named after
// the file without its extension.
func ReadTrafficCSV(path string) (*models.TrafficCountSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open traffic %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseTrafficCSV(f, name)
}

// ParseTrafficCSV reads "time,howth_count,sutton_count" rows and returns
// them in chronological order.
func ParseTrafficCSV(r io.Reader, name string) (*models.TrafficCountSeries, error) {
	tbl, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if missing := missingHeaders(tbl.names, TrafficColumns); len(missing) > 0 {
		return nil, &models.SchemaMismatchError{Source: name, Missing: missing}
	}

	times := tbl.col("time")
	howth := tbl.col("howth_count")
	sutton := tbl.col("sutton_count")

	out := &models.TrafficCountSeries{Name: name, Samples: make([]models.TrafficSample, 0, len(times))}
	for i := range times {
		ts, err := ParseClock(times[i])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", name, i+1, err)
		}
		h, err := parseCount(howth[i])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: howth_count: %w", name, i+1, err)
		}
		s, err := parseCount(sutton[i])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: sutton_count: %w", name, i+1, err)
		}
		out.Samples = append(out.Samples, models.TrafficSample{Time: ts, HowthCount: h, SuttonCount: s})
	}

	sort.SliceStable(out.Samples, func(i, j int) bool {
		return out.Samples[i].Time.Before(out.Samples[j].Time)
	})
	return out, nil
}

// ParseClock parses an "H:MM" or "HH:MM[:SS]" clock time.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time %q: %w", s, models.ErrInvalidValue)
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("count %q: %w", s, models.ErrInvalidValue)
	}
	return n, nil
}
