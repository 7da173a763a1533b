package models

// NumStat summarizes one numeric column over a filtered subset. A nil
// *NumStat is the "no data" signal: an empty subset is a normal outcome of
// legitimate filtering, never an error.
type NumStat struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// BrandCount is one bar of the brands-by-count chart.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// YearPrice is one point of the mean-price-per-year trend.
type YearPrice struct {
	Year      int     `json:"year"`
	MeanPrice float64 `json:"mean_price"`
}

// HistBucket is one bin of a histogram, covering [From, To).
type HistBucket struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// ScatterPoint is one price-vs-mileage sample.
type ScatterPoint struct {
	Mileage float64 `json:"mileage"`
	Price   float64 `json:"price"`
	Brand   string  `json:"brand"`
}

// Summary holds the KPI aggregates over a filtered subset. Stats are nil
// when no row contributed a value for that column.
type Summary struct {
	TotalCars      int      `json:"total_cars"`
	Price          *NumStat `json:"price"`
	Mileage        *NumStat `json:"mileage"`
	EngineCapacity *NumStat `json:"engine_capacity"`
}

// ViewModel is everything a dashboard needs to draw one filtered view.
// It is a pure function of (cleaned dataset, filters), computed by
// InsightService.Render, so the UI event loop can recompute it on every
// interaction.
type ViewModel struct {
	Summary        *Summary       `json:"summary"`
	Preview        []*Car         `json:"preview"`
	TopBrands      []BrandCount   `json:"top_brands"`
	MileageHist    []HistBucket   `json:"mileage_hist"`
	CapacityHist   []HistBucket   `json:"capacity_hist"`
	PriceVsMileage []ScatterPoint `json:"price_vs_mileage"`
	PriceByYear    []YearPrice    `json:"price_by_year"`
}
