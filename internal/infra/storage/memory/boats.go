// Package memory implements the boat and booking repositories on top of maps.
// It backs storage.driver = "memory" and the use-case tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
)

// BoatRepository in-memory репозиторий лодок
type BoatRepository struct {
	mu     sync.RWMutex
	nextID int64
	boats  map[int64]*domain.Boat
	now    func() time.Time
}

// NewBoatRepository создает пустой репозиторий лодок
func NewBoatRepository() *BoatRepository {
	return &BoatRepository{
		boats: make(map[int64]*domain.Boat),
		now:   time.Now,
	}
}

// Create сохраняет копию лодки и присваивает ей ID
func (r *BoatRepository) Create(_ context.Context, boat *domain.Boat) (*domain.Boat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()

	stored := copyBoat(boat)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.boats[stored.ID] = stored

	return copyBoat(stored), nil
}

// GetByID возвращает копию лодки
func (r *BoatRepository) GetByID(_ context.Context, id int64) (*domain.Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boat, ok := r.boats[id]
	if !ok {
		return nil, boatRepo.ErrBoatNotFound
	}
	return copyBoat(boat), nil
}

// List возвращает лодки по фильтру в порядке ID
func (r *BoatRepository) List(_ context.Context, filter domain.BoatFilter) ([]*domain.Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boats := make([]*domain.Boat, 0, len(r.boats))
	for _, b := range r.boats {
		if filter.Matches(b) {
			boats = append(boats, copyBoat(b))
		}
	}
	sort.Slice(boats, func(i, j int) bool { return boats[i].ID < boats[j].ID })

	return boats, nil
}

// Update заменяет изменяемые поля лодки
func (r *BoatRepository) Update(_ context.Context, boat *domain.Boat) (*domain.Boat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.boats[boat.ID]
	if !ok {
		return nil, boatRepo.ErrBoatNotFound
	}

	stored := copyBoat(boat)
	stored.OwnerID = existing.OwnerID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.now()
	r.boats[stored.ID] = stored

	return copyBoat(stored), nil
}

func copyBoat(b *domain.Boat) *domain.Boat {
	c := *b
	if b.WeekendPrice != nil {
		wp := *b.WeekendPrice
		c.WeekendPrice = &wp
	}
	c.AvailabilityBlocks = append([]domain.AvailabilityBlock(nil), b.AvailabilityBlocks...)
	c.SpecialPricing = append([]domain.SpecialPricingEntry(nil), b.SpecialPricing...)
	c.Services = append([]domain.Service(nil), b.Services...)
	return &c
}
