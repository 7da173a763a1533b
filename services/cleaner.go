package services

import (
	"strconv"
	"strings"
	"unicode"

	"car-dashboard/models"
	"car-dashboard/utils"
)

// Range invariants for the outlier filter. Rows outside are dropped, never
// clamped: out-of-range values are assumed to be data-entry errors, and
// imputing them would fabricate false precision.
const (
	MileageMin = 0.0
	MileageMax = 800000.0

	// Engine capacity is accepted in one of two disjoint bands: combustion
	// displacement in cc, or electric power in kW.
	CombustionMin = 600.0
	CombustionMax = 7000.0
	ElectricMin   = 20.0
	ElectricMax   = 150.0
)

// sourceColumns are the expected columns of the input file, in normalized
// identifier form. Header matching is case- and spacing-insensitive.
var sourceColumns = []string{
	"title", "price", "year", "mileage", "fuel", "engine_capacity",
	"transmission", "registered_in", "color", "body_type", "assembly",
	"last_updated",
}

// Cleaner runs the deterministic transformation pipeline over raw rows:
// normalize columns, coerce types, filter outliers, derive brand.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean maps the header onto known columns, then transforms each row.
// Rows with out-of-range or unresolvable mileage/engine capacity are
// silently dropped; order among kept rows is preserved.
func (c *Cleaner) Clean(header []string, rows [][]string) []*models.Car {
	idx := mapColumns(header)
	result := make([]*models.Car, 0, len(rows))

	for _, row := range rows {
		car, ok := c.cleanRow(rawCarFrom(idx, row))
		if !ok {
			continue
		}
		result = append(result, car)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d cars (dropped %d)",
		len(rows), len(result), len(rows)-len(result))
	return result
}

// cleanRow coerces one raw row into a Car, or reports it as dropped.
func (c *Cleaner) cleanRow(raw *models.RawCar) (*models.Car, bool) {
	mileage, ok := coerceNumber(raw.Mileage).Float()
	if !ok || mileage < MileageMin || mileage > MileageMax {
		return nil, false
	}

	capacity, ok := NormaliseEngineCapacity(raw.EngineCapacity).Float()
	if !ok {
		return nil, false
	}
	combustion := capacity >= CombustionMin && capacity <= CombustionMax
	electric := capacity >= ElectricMin && capacity <= ElectricMax
	if !combustion && !electric {
		return nil, false
	}

	title := normaliseText(raw.Title)

	return &models.Car{
		Title:          title,
		Brand:          ExtractBrand(title),
		Price:          coerceNumber(raw.Price),
		Year:           coerceNumber(raw.Year),
		Mileage:        mileage,
		EngineCapacity: capacity,
		Fuel:           normaliseText(raw.Fuel),
		Transmission:   normaliseText(raw.Transmission),
		RegisteredIn:   normaliseText(raw.RegisteredIn),
		Color:          normaliseText(raw.Color),
		BodyType:       normaliseText(raw.BodyType),
		Assembly:       normaliseText(raw.Assembly),
		LastUpdated:    normaliseText(raw.LastUpdated),
	}, true
}

// NormaliseColumn turns a raw column label into a stable identifier:
// leading/trailing whitespace stripped, internal whitespace replaced with
// underscores, everything outside the alphanumeric/underscore set removed.
// Idempotent: normalising an already-normal label is a no-op.
func NormaliseColumn(label string) string {
	label = strings.TrimSpace(label)

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormaliseEngineCapacity resolves the mixed-convention engine_capacity
// field into a numeric value or an explicit missing marker. The field mixes
// plain numbers with unit-suffixed text ("1300cc", "50 kW", "95 kWh"), so
// this runs in two stages: textual unit-stripping, then tolerant numeric
// coercion. It never fails; malformed entries resolve to missing and are
// excluded by the range filter.
func NormaliseEngineCapacity(raw string) models.Value {
	s := strings.ToLower(raw)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if s == "" {
		return models.None()
	}

	digits := leadingDigits(s)
	if digits == "" {
		return models.None()
	}

	// "kw" also matches "kwh".
	if strings.Contains(s, "cc") || strings.Contains(s, "kw") {
		n, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return models.None()
		}
		return models.Num(n)
	}

	// No unit token: leave the original value to plain numeric coercion.
	return coerceNumber(raw)
}

// ExtractBrand derives the brand as the first whitespace-delimited token of
// the title. An empty title yields an empty brand, which downstream filters
// treat as a category of its own.
func ExtractBrand(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// coerceNumber parses a field as a number; anything unparseable, including
// an empty cell, resolves to missing, never an error.
func coerceNumber(raw string) models.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.None()
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.None()
	}
	return models.Num(n)
}

// leadingDigits returns the maximal leading run of digit characters.
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// mapColumns matches normalized, lower-cased header labels against the
// known source columns. Unrecognized columns are ignored.
func mapColumns(header []string) map[string]int {
	known := make(map[string]struct{}, len(sourceColumns))
	for _, col := range sourceColumns {
		known[col] = struct{}{}
	}

	idx := make(map[string]int, len(header))
	for i, label := range header {
		col := strings.ToLower(NormaliseColumn(label))
		if _, ok := known[col]; ok {
			idx[col] = i
		}
	}
	return idx
}

// rawCarFrom picks the mapped columns out of a row. Missing or short
// columns stay empty.
func rawCarFrom(idx map[string]int, row []string) *models.RawCar {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	return &models.RawCar{
		Title:          field("title"),
		Price:          field("price"),
		Year:           field("year"),
		Mileage:        field("mileage"),
		Fuel:           field("fuel"),
		EngineCapacity: field("engine_capacity"),
		Transmission:   field("transmission"),
		RegisteredIn:   field("registered_in"),
		Color:          field("color"),
		BodyType:       field("body_type"),
		Assembly:       field("assembly"),
		LastUpdated:    field("last_updated"),
	}
}

// normaliseText strips leading/trailing whitespace and collapses internal
// whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
