package storage

import (
	"os"
	"path/filepath"
	"testing"

	"car-dashboard/models"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.csv")
	data := "title,price,year,mileage,fuel,engine_capacity,transmission,registered_in,color,body_type,assembly,last_updated\n" +
		"\"Toyota Corolla, GLi\",2500000,2015,90000,Petrol,1300cc,Manual,Lahore,White,Sedan,Local,2024-01-01\n" +
		"Honda City,1800000,2012\n" // ragged row
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	header, rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(header) != 12 {
		t.Errorf("header: got %d columns, want 12", len(header))
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0][0] != "Toyota Corolla, GLi" {
		t.Errorf("quoted field: got %q", rows[0][0])
	}
	if len(rows[1]) != 3 {
		t.Errorf("ragged row: got %d fields, want 3", len(rows[1]))
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadCSV(path); err == nil {
		t.Error("expected error for file without a header row")
	}
}

func TestCSVWriterExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	cars := []*models.Car{
		{Title: "Toyota Corolla 2015", Brand: "Toyota", Price: models.Num(2500000),
			Year: models.Num(2015), Mileage: 90000, EngineCapacity: 1300,
			Fuel: "Petrol", Transmission: "Manual", RegisteredIn: "Lahore",
			Color: "White", BodyType: "Sedan", Assembly: "Local", LastUpdated: "2024-01-01"},
		{Title: "Suzuki Mehran", Brand: "Suzuki", Price: models.None(),
			Year: models.None(), Mileage: 60000, EngineCapacity: 800},
	}
	if err := w.WriteCars(cars); err != nil {
		t.Fatalf("WriteCars: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	header, rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if header[0] != "title" || header[1] != "brand" {
		t.Errorf("export header wrong: %v", header[:2])
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0][2] != "2500000" {
		t.Errorf("price cell: got %q, want 2500000", rows[0][2])
	}
	// Missing values export as empty cells, not zeros.
	if rows[1][2] != "" || rows[1][3] != "" {
		t.Errorf("missing price/year should be empty cells, got %q/%q", rows[1][2], rows[1][3])
	}
}
