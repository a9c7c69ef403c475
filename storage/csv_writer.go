package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"howth-congestion/models"
)

// CSVWriter exports elasticity curves as region,price,demand rows.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"region", "price", "demand"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteCurves appends every point of every curve.
func (c *CSVWriter) WriteCurves(curves []models.ElasticityCurve) error {
	for _, curve := range curves {
		for _, p := range curve.Points {
			row := []string{
				curve.Label,
				strconv.Itoa(p.Price),
				strconv.FormatFloat(p.Demand, 'f', 2, 64),
			}
			if err := c.writer.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// WriteTrafficTemplate writes a blank count sheet with one zeroed row every
// stepMinutes from startHour:00 up to, but not including, endHour:endMinute.
func WriteTrafficTemplate(path string, startHour, endHour, endMinute, stepMinutes int) (rows int, err error) {
	if stepMinutes <= 0 || startHour < 0 || endHour > 23 || startHour > endHour || endMinute < 0 || endMinute > 60 {
		return 0, fmt.Errorf("csv: template range %02d:00-%02d:%02d step %d: %w",
			startHour, endHour, endMinute, stepMinutes, models.ErrInvalidValue)
	}

	f, err := createFile(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(TrafficColumns); err != nil {
		return 0, fmt.Errorf("csv: write header: %w", err)
	}

	for hour := startHour; hour <= endHour; hour++ {
		last := 60
		if hour == endHour {
			last = endMinute
		}
		for minute := 0; minute < last; minute += stepMinutes {
			if err := w.Write([]string{fmt.Sprintf("%d:%02d", hour, minute), "0", "0"}); err != nil {
				return rows, fmt.Errorf("csv: write row: %w", err)
			}
			rows++
		}
	}

	w.Flush()
	return rows, w.Error()
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return f, nil
}
