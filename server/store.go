package server

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"car-dashboard/models"
	"car-dashboard/services"
	"car-dashboard/storage"
	"car-dashboard/utils"
)

// Store holds the cleaned dataset the dashboard renders from. The pipeline
// stages themselves stay pure; the store is the one shared resource, guarded
// by a single RWMutex, and is replaced wholesale on reload.
type Store struct {
	path    string
	cleaner *services.Cleaner
	logger  *utils.Logger

	mu   sync.RWMutex
	cars []*models.Car

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewStore creates a Store over the given source file. Call Reload before
// serving.
func NewStore(path string, cleaner *services.Cleaner, logger *utils.Logger) *Store {
	return &Store{path: path, cleaner: cleaner, logger: logger}
}

// Reload re-reads the source file through the cleaning pipeline and swaps
// the dataset in. On failure the previous dataset stays in place.
func (s *Store) Reload() error {
	header, rows, err := storage.ReadCSV(s.path)
	if err != nil {
		return err
	}
	cars := s.cleaner.Clean(header, rows)

	s.mu.Lock()
	s.cars = cars
	s.mu.Unlock()

	s.logger.Info("[store] Dataset loaded: %d cars from %s", len(cars), s.path)
	return nil
}

// Cars returns the current dataset. Records are never mutated after
// cleaning, so the shared slice snapshot is safe to read.
func (s *Store) Cars() []*models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cars
}

// Brands returns the distinct brand values in sorted order, the options of
// the dashboard's multi-select.
func (s *Store) Brands() []string {
	set := utils.NewStringSet()
	for _, car := range s.Cars() {
		set.Add(car.Brand)
	}
	return set.Values()
}

// YearBounds returns the observed min and max model year, the defaults of
// the dashboard's range selector. ok is false when no row carries a year.
func (s *Store) YearBounds() (min, max int, ok bool) {
	for _, car := range s.Cars() {
		y, known := car.Year.Float()
		if !known {
			continue
		}
		year := int(y)
		if !ok || year < min {
			min = year
		}
		if !ok || year > max {
			max = year
		}
		ok = true
	}
	return min, max, ok
}

// Watch starts reloading the dataset whenever the source file is written.
// Watching the directory rather than the file survives editors and tools
// that replace the file instead of writing in place.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	s.watcher = watcher
	s.stopCh = make(chan struct{})
	base := filepath.Base(s.path)

	go func() {
		for {
			select {
			case event, open := <-watcher.Events:
				if !open {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				s.logger.Info("[store] %s changed — reloading", base)
				if err := s.Reload(); err != nil {
					s.logger.Warn("[store] Reload failed, keeping previous dataset: %v", err)
				}
			case err, open := <-watcher.Errors:
				if !open {
					return
				}
				s.logger.Warn("[store] Watcher error: %v", err)
			case <-s.stopCh:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher, if one was started.
func (s *Store) Close() {
	if s.stopCh != nil {
		close(s.stopCh)
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}
