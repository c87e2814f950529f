// Package species holds the static attribute table for every playable bird.
// Entries are registered once at init and never mutated afterwards.
package species

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned when a species id is not in the table.
var ErrUnknown = errors.New("species: unknown species")

// ID identifies a species (e.g., "cardinal").
type ID string

// Attributes are the per-species numbers the simulation reads.
type Attributes struct {
	Speed      float64 `json:"speed"`
	FlapPower  float64 `json:"flap_power"`
	Stamina    float64 `json:"stamina"`
	MaxFood    float64 `json:"max_food"`
	MaxWater   float64 `json:"max_water"`
	FeedRate   float64 `json:"feed_rate"`
	DrinkRate  float64 `json:"drink_rate"`
	FoodDrain  float64 `json:"food_drain"`
	WaterDrain float64 `json:"water_drain"`
}

// Species is one entry of the attribute table.
type Species struct {
	ID             ID
	Name           string
	ScientificName string
	Description    string
	Attributes     Attributes
}

var (
	table = make(map[ID]Species)
	order []ID
	mu    sync.RWMutex
)

// Register adds a species to the table.
// Panics if the id is already registered or the attributes are unusable.
func Register(s Species) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := table[s.ID]; exists {
		panic(fmt.Sprintf("species: %q already registered", s.ID))
	}
	if err := s.Attributes.validate(); err != nil {
		panic(fmt.Sprintf("species: %q: %v", s.ID, err))
	}

	table[s.ID] = s
	order = append(order, s.ID)
}

// Lookup returns the species with the given id.
func Lookup(id ID) (Species, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := table[id]
	if !ok {
		return Species{}, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return s, nil
}

// MustLookup is Lookup for ids that are known at compile time.
func MustLookup(id ID) Species {
	s, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Exists checks if a species with the given id is registered.
func Exists(id ID) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := table[id]
	return ok
}

// List returns all species in registration order.
func List() []Species {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Species, 0, len(order))
	for _, id := range order {
		result = append(result, table[id])
	}
	return result
}

// IDs returns all registered ids sorted alphabetically.
func IDs() []ID {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]ID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

func (a Attributes) validate() error {
	switch {
	case a.Speed <= 0:
		return errors.New("speed must be positive")
	case a.FlapPower <= 0:
		return errors.New("flap power must be positive")
	case a.Stamina <= 0 || a.MaxFood <= 0 || a.MaxWater <= 0:
		return errors.New("capacities must be positive")
	case a.FeedRate < 0 || a.DrinkRate < 0 || a.FoodDrain < 0 || a.WaterDrain < 0:
		return errors.New("rates must not be negative")
	}
	return nil
}
