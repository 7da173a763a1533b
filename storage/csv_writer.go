package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"car-dashboard/models"
)

// exportHeader is the cleaned-dataset export schema: the normalized source
// columns plus the derived brand.
var exportHeader = []string{
	"title", "brand", "price", "year", "mileage", "fuel", "engine_capacity",
	"transmission", "registered_in", "color", "body_type", "assembly",
	"last_updated",
}

// CSVWriter exports the cleaned dataset to a CSV file. Unlike the SQL
// destination, missing values are written as empty cells, not zeros.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteCars appends the cleaned cars as rows.
func (c *CSVWriter) WriteCars(cars []*models.Car) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, car := range cars {
		row := []string{
			car.Title,
			car.Brand,
			formatValue(car.Price),
			formatValue(car.Year),
			strconv.FormatFloat(car.Mileage, 'f', -1, 64),
			car.Fuel,
			strconv.FormatFloat(car.EngineCapacity, 'f', -1, 64),
			car.Transmission,
			car.RegisteredIn,
			car.Color,
			car.BodyType,
			car.Assembly,
			car.LastUpdated,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatValue(v models.Value) string {
	n, ok := v.Float()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
