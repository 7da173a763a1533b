package models

import "encoding/json"

// ValueKind tags a cell value as numeric, free text, or missing.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
)

// Value is one cell of a record, resolved once at ingestion. Downstream
// stages switch on the kind instead of re-sniffing the underlying type.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

// Num wraps a float64 as a numeric Value.
func Num(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Str wraps a string as a text Value.
func Str(s string) Value { return Value{Kind: KindText, Text: s} }

// None is the explicit missing marker.
func None() Value { return Value{Kind: KindMissing} }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Float returns the numeric value and whether one is present.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// OrZero returns the numeric value, or 0 when missing. This is the
// persistence-path default policy: it deliberately conflates "absent" and
// "zero", which skews numeric aggregates computed over the stored table.
func (v Value) OrZero() float64 { return v.Num }

// MarshalJSON renders numbers as numbers, text as strings and missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// RawCar holds one unprocessed row exactly as read from the source file.
// Fields not present in the file stay empty.
type RawCar struct {
	Title          string
	Price          string
	Year           string
	Mileage        string
	Fuel           string
	EngineCapacity string
	Transmission   string
	RegisteredIn   string
	Color          string
	BodyType       string
	Assembly       string
	LastUpdated    string
}

// Car is a cleaned, validated listing. Mileage and EngineCapacity are
// guaranteed in range by the outlier filter; Price and Year may be missing.
type Car struct {
	Title          string  `json:"title"`
	Brand          string  `json:"brand"`
	Price          Value   `json:"price"`
	Year           Value   `json:"year"`
	Mileage        float64 `json:"mileage"`
	EngineCapacity float64 `json:"engine_capacity"`
	Fuel           string  `json:"fuel"`
	Transmission   string  `json:"transmission"`
	RegisteredIn   string  `json:"registered_in"`
	Color          string  `json:"color"`
	BodyType       string  `json:"body_type"`
	Assembly       string  `json:"assembly"`
	LastUpdated    string  `json:"last_updated"`
}
