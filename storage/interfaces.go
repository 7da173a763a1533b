package storage

import "car-dashboard/models"

// CarWriter is the interface any destination table backend must satisfy.
// Write replaces the whole table (drop + recreate, last write wins);
// FetchAll reads the stored rows back for reporting.
type CarWriter interface {
	Write(cars []*models.Car) error
	FetchAll() ([]*models.Car, error)
	Close() error
}

// insertArgs flattens a cleaned car into the 12 destination columns, in
// table order. Missing values become the zero of their column type, a lossy
// policy that conflates "absent" with "zero" in the stored table.
func insertArgs(car *models.Car) []interface{} {
	return []interface{}{
		car.Title,
		car.Price.OrZero(),
		int(car.Year.OrZero()),
		car.Mileage,
		car.Fuel,
		car.EngineCapacity,
		car.Transmission,
		car.RegisteredIn,
		car.Color,
		car.BodyType,
		car.Assembly,
		car.LastUpdated,
	}
}
