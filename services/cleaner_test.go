package services

import (
	"testing"

	"car-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

var carHeader = []string{
	"title", "price", "year", "mileage", "fuel", "engine_capacity",
	"transmission", "registered_in", "color", "body_type", "assembly",
	"last_updated",
}

func TestNormaliseColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"title", "title"},
		{"  Engine Capacity ", "Engine_Capacity"},
		{"Registered In", "Registered_In"},
		{"price (PKR)", "price_PKR"},
		{"body-type", "bodytype"},
		{"Last_Updated", "Last_Updated"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormaliseColumn(tt.in)
		if got != tt.want {
			t.Errorf("NormaliseColumn(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormaliseColumnIdempotent(t *testing.T) {
	labels := []string{"  Engine Capacity ", "Registered In", "price (PKR)", "title", "a  b"}
	for _, l := range labels {
		once := NormaliseColumn(l)
		twice := NormaliseColumn(once)
		if once != twice {
			t.Errorf("NormaliseColumn not idempotent for %q: %q != %q", l, once, twice)
		}
	}
}

func TestNormaliseEngineCapacity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		missing bool
	}{
		{"1300cc", 1300, false},
		{"1300 cc", 1300, false},
		{" 660 CC ", 660, false},
		{"50kw", 50, false},
		{"95 kWh", 95, false},
		{"5000", 5000, false},
		{"1800", 1800, false},
		{"abc", 0, true},
		{"", 0, true},
		{"cc", 0, true},
		{"1.3L", 0, true}, // digits but no recognized unit, not plain numeric
	}

	for _, tt := range tests {
		got := NormaliseEngineCapacity(tt.in)
		if tt.missing {
			if !got.IsMissing() {
				t.Errorf("NormaliseEngineCapacity(%q) = %v; want missing", tt.in, got)
			}
			continue
		}
		n, ok := got.Float()
		if !ok || n != tt.want {
			t.Errorf("NormaliseEngineCapacity(%q) = %v; want %.0f", tt.in, got, tt.want)
		}
	}
}

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Toyota Corolla 2015", "Toyota"},
		{"  Honda  Civic ", "Honda"},
		{"Suzuki", "Suzuki"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		got := ExtractBrand(tt.title)
		if got != tt.want {
			t.Errorf("ExtractBrand(%q) = %q; want %q", tt.title, got, tt.want)
		}
	}
}

func row(title, price, year, mileage, capacity string) []string {
	return []string{title, price, year, mileage, "Petrol", capacity,
		"Manual", "Lahore", "White", "Sedan", "Local", "2024-01-01"}
}

func TestCleanDropsOutliers(t *testing.T) {
	c := NewCleaner(newTestLogger())

	rows := [][]string{
		row("Toyota Corolla 2015", "2500000", "2015", "90000", "1300cc"), // kept
		row("Honda City", "1800000", "2012", "900000", "1300cc"),         // mileage too high
		row("Suzuki Alto", "1100000", "2018", "-5", "660cc"),             // negative mileage
		row("Nissan Leaf", "3000000", "2019", "40000", "50kw"),           // kept (electric band)
		row("Audi A6", "9000000", "2020", "30000", "300"),                // outside both bands
		row("Kia Picanto", "2000000", "2021", "15000", "abc"),            // unparseable capacity
		row("Honda Civic", "4000000", "2020", "", "1800"),                // missing mileage
	}

	cars := c.Clean(carHeader, rows)
	if len(cars) != 2 {
		t.Fatalf("expected 2 cars after cleaning, got %d", len(cars))
	}

	// Order among kept rows is preserved.
	if cars[0].Brand != "Toyota" || cars[1].Brand != "Nissan" {
		t.Errorf("kept rows out of order: %q, %q", cars[0].Brand, cars[1].Brand)
	}
	if cars[0].EngineCapacity != 1300 {
		t.Errorf("EngineCapacity: got %.0f, want 1300", cars[0].EngineCapacity)
	}
	if cars[1].EngineCapacity != 50 {
		t.Errorf("electric EngineCapacity: got %.0f, want 50", cars[1].EngineCapacity)
	}
}

func TestCleanInvariantsHold(t *testing.T) {
	c := NewCleaner(newTestLogger())

	rows := [][]string{
		row("Toyota Corolla", "1000000", "2010", "100000", "1300cc"),
		row("Honda City", "x", "2012", "800000", "7000"),
		row("Suzuki Mehran", "900000", "", "0", "800"),
		row("Tesla Model 3", "12000000", "2022", "10000", "150kw"),
	}

	for _, car := range c.Clean(carHeader, rows) {
		if car.Mileage < MileageMin || car.Mileage > MileageMax {
			t.Errorf("mileage invariant violated: %.0f", car.Mileage)
		}
		combustion := car.EngineCapacity >= CombustionMin && car.EngineCapacity <= CombustionMax
		electric := car.EngineCapacity >= ElectricMin && car.EngineCapacity <= ElectricMax
		if !combustion && !electric {
			t.Errorf("engine capacity invariant violated: %.0f", car.EngineCapacity)
		}
	}
}

func TestCleanKeepsMissingPriceAndYear(t *testing.T) {
	c := NewCleaner(newTestLogger())

	rows := [][]string{
		row("Toyota Vitz", "", "n/a", "50000", "1000cc"),
	}

	cars := c.Clean(carHeader, rows)
	if len(cars) != 1 {
		t.Fatalf("expected row with missing price/year to be kept, got %d rows", len(cars))
	}
	if !cars[0].Price.IsMissing() {
		t.Errorf("Price: got %v, want missing", cars[0].Price)
	}
	if !cars[0].Year.IsMissing() {
		t.Errorf("Year: got %v, want missing", cars[0].Year)
	}
}

func TestCleanHeaderMapping(t *testing.T) {
	c := NewCleaner(newTestLogger())

	header := []string{" Title ", "Price", "Year", "Mileage", "Fuel",
		"Engine Capacity", "Transmission", "Registered In", "Color",
		"Body Type", "Assembly", "Last Updated", "Extra Column"}
	rows := [][]string{
		{"Toyota Corolla 2015", "2500000", "2015", "90000", "Petrol",
			"1300 cc", "Automatic", "Karachi", "Silver", "Sedan",
			"Imported", "2024-02-10", "ignored"},
	}

	cars := c.Clean(header, rows)
	if len(cars) != 1 {
		t.Fatalf("expected 1 car, got %d", len(cars))
	}

	got := cars[0]
	if got.Brand != "Toyota" {
		t.Errorf("Brand: got %q, want Toyota", got.Brand)
	}
	if got.RegisteredIn != "Karachi" {
		t.Errorf("RegisteredIn: got %q, want Karachi", got.RegisteredIn)
	}
	if got.EngineCapacity != 1300 {
		t.Errorf("EngineCapacity: got %.0f, want 1300", got.EngineCapacity)
	}
	if y, ok := got.Year.Float(); !ok || y != 2015 {
		t.Errorf("Year: got %v, want 2015", got.Year)
	}
}

func TestCleanShortRows(t *testing.T) {
	c := NewCleaner(newTestLogger())

	// Row shorter than the header: trailing fields read as empty, and the
	// missing mileage drops the row instead of panicking.
	rows := [][]string{
		{"Toyota Corolla", "2500000"},
	}

	cars := c.Clean(carHeader, rows)
	if len(cars) != 0 {
		t.Errorf("expected short row to be dropped, got %d cars", len(cars))
	}
}

func TestCoerceNumberTotal(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		missing bool
	}{
		{"2500000", 2500000, false},
		{" 90000 ", 90000, false},
		{"12.5", 12.5, false},
		{"", 0, true},
		{"n/a", 0, true},
		{"52,000", 0, true},
	}

	for _, tt := range tests {
		got := coerceNumber(tt.in)
		if tt.missing != got.IsMissing() {
			t.Errorf("coerceNumber(%q) missing = %v; want %v", tt.in, got.IsMissing(), tt.missing)
			continue
		}
		if n, ok := got.Float(); ok && n != tt.want {
			t.Errorf("coerceNumber(%q) = %.2f; want %.2f", tt.in, n, tt.want)
		}
	}
}
