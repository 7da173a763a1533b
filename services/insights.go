package services

import (
	"fmt"
	"sort"
	"strings"

	"car-dashboard/models"
	"car-dashboard/utils"
)

const (
	topBrandsLimit = 10
	previewLimit   = 10
	histogramBins  = 20
	scatterLimit   = 500
)

// FilterOptions selects the subset of the cleaned dataset a view is
// rendered over.
//
// Brands == nil means "all brands" (the dashboard default); an empty set
// means an empty selection, which yields an empty subset. YearMin/YearMax
// are inclusive; a zero range means no year constraint. Rows without a year
// pass the year predicate; only the brand predicate decides them.
type FilterOptions struct {
	Brands  *utils.StringSet
	YearMin int
	YearMax int
}

// InsightService computes filtered views and aggregates over the cleaned
// dataset.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Filter returns the subset matching the options. It is pure and preserves
// the order of kept rows.
func Filter(cars []*models.Car, opts FilterOptions) []*models.Car {
	out := make([]*models.Car, 0, len(cars))
	for _, car := range cars {
		if opts.Brands != nil && !opts.Brands.Contains(car.Brand) {
			continue
		}
		if opts.YearMin != 0 || opts.YearMax != 0 {
			if y, ok := car.Year.Float(); ok {
				year := int(y)
				if year < opts.YearMin || year > opts.YearMax {
					continue
				}
			}
		}
		out = append(out, car)
	}
	return out
}

// Render computes the full dashboard view model for one filter selection.
// Pure: same dataset and filters always produce the same view.
func (s *InsightService) Render(cars []*models.Car, opts FilterOptions) *models.ViewModel {
	subset := Filter(cars, opts)

	preview := subset
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	return &models.ViewModel{
		Summary:        s.Summarize(subset),
		Preview:        preview,
		TopBrands:      TopBrands(subset, topBrandsLimit),
		MileageHist:    Histogram(numericColumn(subset, mileageOf), histogramBins),
		CapacityHist:   Histogram(numericColumn(subset, capacityOf), histogramBins),
		PriceVsMileage: scatterSample(subset, scatterLimit),
		PriceByYear:    PriceByYear(subset),
	}
}

// Summarize computes the KPI aggregates. Missing prices are skipped, not
// counted as zero; an empty subset yields nil stats rather than an error.
func (s *InsightService) Summarize(cars []*models.Car) *models.Summary {
	var prices []float64
	for _, car := range cars {
		if p, ok := car.Price.Float(); ok {
			prices = append(prices, p)
		}
	}

	return &models.Summary{
		TotalCars:      len(cars),
		Price:          numStat(prices),
		Mileage:        numStat(numericColumn(cars, mileageOf)),
		EngineCapacity: numStat(numericColumn(cars, capacityOf)),
	}
}

// TopBrands counts rows per brand and returns the n most frequent, most
// frequent first, ties broken alphabetically.
func TopBrands(cars []*models.Car, n int) []models.BrandCount {
	counts := make(map[string]int)
	for _, car := range cars {
		counts[car.Brand]++
	}

	out := make([]models.BrandCount, 0, len(counts))
	for brand, count := range counts {
		out = append(out, models.BrandCount{Brand: brand, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Brand < out[j].Brand
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// PriceByYear computes the mean price per model year, ordered by year
// ascending. Rows missing either field contribute nothing.
func PriceByYear(cars []*models.Car) []models.YearPrice {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, car := range cars {
		y, ok := car.Year.Float()
		if !ok {
			continue
		}
		p, ok := car.Price.Float()
		if !ok {
			continue
		}
		year := int(y)
		sums[year] += p
		counts[year]++
	}

	out := make([]models.YearPrice, 0, len(sums))
	for year, sum := range sums {
		out = append(out, models.YearPrice{
			Year:      year,
			MeanPrice: round2(sum / float64(counts[year])),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Histogram bins values into equal-width buckets over [min, max]. The last
// bucket is closed on both ends so the maximum lands inside it. Empty input
// yields nil.
func Histogram(values []float64, bins int) []models.HistBucket {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []models.HistBucket{{From: min, To: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]models.HistBucket, bins)
	for i := range out {
		out[i].From = min + float64(i)*width
		out[i].To = min + float64(i+1)*width
	}
	out[bins-1].To = max

	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Print renders the load-time insight report to the terminal.
func (s *InsightService) Print(vm *models.ViewModel) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 CAR DATASET INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total cars : \033[1m%d\033[0m\n", vm.Summary.TotalCars)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price (PKR)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printStat(vm.Summary.Price)
	fmt.Println()

	fmt.Printf("\033[1;33m  Mileage (km)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printStat(vm.Summary.Mileage)
	fmt.Println()

	fmt.Printf("\033[1;33m  Engine Capacity (cc / kW)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printStat(vm.Summary.EngineCapacity)
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Brands\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(vm.TopBrands) == 0 {
		fmt.Printf("  No data\n")
	} else {
		maxCount := vm.TopBrands[0].Count
		for _, bc := range vm.TopBrands {
			bar := strings.Repeat("█", barWidth(bc.Count, maxCount, 30))
			fmt.Printf("  %-20s %s (%d)\n", truncate(bc.Brand, 18), bar, bc.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Average Price by Year\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(vm.PriceByYear) == 0 {
		fmt.Printf("  No data\n")
	} else {
		for _, yp := range vm.PriceByYear {
			fmt.Printf("  %d : \033[1;32m%.0f\033[0m\n", yp.Year, yp.MeanPrice)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printStat(st *models.NumStat) {
	if st == nil {
		fmt.Printf("  No data\n")
		return
	}
	fmt.Printf("  Mean : \033[1;32m%.2f\033[0m\n", st.Mean)
	fmt.Printf("  Min  : \033[1;32m%.2f\033[0m\n", st.Min)
	fmt.Printf("  Max  : \033[1;32m%.2f\033[0m\n", st.Max)
}

func numStat(values []float64) *models.NumStat {
	if len(values) == 0 {
		return nil
	}

	st := &models.NumStat{Count: len(values), Min: values[0], Max: values[0]}
	var total float64
	for _, v := range values {
		total += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean = round2(total / float64(len(values)))
	return st
}

func numericColumn(cars []*models.Car, get func(*models.Car) float64) []float64 {
	out := make([]float64, len(cars))
	for i, car := range cars {
		out[i] = get(car)
	}
	return out
}

func mileageOf(c *models.Car) float64  { return c.Mileage }
func capacityOf(c *models.Car) float64 { return c.EngineCapacity }

func scatterSample(cars []*models.Car, limit int) []models.ScatterPoint {
	out := make([]models.ScatterPoint, 0, limit)
	for _, car := range cars {
		p, ok := car.Price.Float()
		if !ok {
			continue
		}
		out = append(out, models.ScatterPoint{
			Mileage: car.Mileage,
			Price:   p,
			Brand:   car.Brand,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

func barWidth(count, max, width int) int {
	if max <= 0 {
		return 0
	}
	w := count * width / max
	if w == 0 && count > 0 {
		w = 1
	}
	return w
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
