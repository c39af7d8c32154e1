package boats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Service сервис для управления лодками владельцев
type Service struct {
	boatRepo BoatRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса лодок
func NewService(boatRepo BoatRepository, logger Logger) *Service {
	return &Service{
		boatRepo: boatRepo,
		logger:   logger,
	}
}

// Create создает лодку владельца.
// Некорректные блоки доступности сохраняются как есть и возвращаются в ответе
// с ошибкой по каждому блоку; при расчёте слотов они пропускаются.
func (s *Service) Create(ctx context.Context, req *models.CreateBoatRequest) (*models.BoatResponse, error) {
	s.logger.Info("Create: creating boat %q for owner=%d", req.Name, req.UserID)

	boat, err := req.ToDomainBoat()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateBoat(boat); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.boatRepo.Create(ctx, boat)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created boat id=%d", created.ID)
	resp := models.FromDomainBoat(created)
	s.warnBlockErrors("Create", resp)
	return resp, nil
}

// GetByID получает лодку по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BoatResponse, error) {
	boat, err := s.getBoat(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBoat(boat), nil
}

// List возвращает лодки по фильтру; пустой фильтр возвращает все лодки
func (s *Service) List(ctx context.Context, req *models.ListBoatsRequest) ([]*models.BoatResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	boats, err := s.boatRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d boats", len(boats))
	return models.FromDomainBoats(boats), nil
}

// Update частично обновляет лодку
// Доступно только владельцу лодки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBoatRequest) (*models.BoatResponse, error) {
	s.logger.Info("Update: updating boat id=%d by user=%d", id, req.UserID)

	boat, err := s.getOwnedBoat(ctx, "Update", id, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := req.ApplyTo(boat); err != nil {
		s.logger.Warn("Update: invalid request for boat id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateBoat(boat); err != nil {
		s.logger.Warn("Update: validation failed for boat id=%d: %v", id, err)
		return nil, err
	}

	return s.save(ctx, "Update", boat)
}

// SetSpecialPricing устанавливает спецтариф на дату (заменяет существующий)
// Доступно только владельцу лодки
func (s *Service) SetSpecialPricing(ctx context.Context, boatID int64, req *models.SpecialPricingRequest) (*models.BoatResponse, error) {
	s.logger.Info("SetSpecialPricing: boat id=%d date=%s by user=%d", boatID, req.Date, req.UserID)

	entry := req.ToDomainEntry()
	if err := entry.Validate(); err != nil {
		s.logger.Warn("SetSpecialPricing: invalid entry for boat id=%d: %v", boatID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	boat, err := s.getOwnedBoat(ctx, "SetSpecialPricing", boatID, req.UserID)
	if err != nil {
		return nil, err
	}

	boat.SetSpecialPricing(entry)
	return s.save(ctx, "SetSpecialPricing", boat)
}

// RemoveSpecialPricing удаляет спецтариф на дату
// Доступно только владельцу лодки
func (s *Service) RemoveSpecialPricing(ctx context.Context, boatID int64, date types.Date, userID int64) (*models.BoatResponse, error) {
	s.logger.Info("RemoveSpecialPricing: boat id=%d date=%s by user=%d", boatID, date, userID)

	boat, err := s.getOwnedBoat(ctx, "RemoveSpecialPricing", boatID, userID)
	if err != nil {
		return nil, err
	}

	if !boat.RemoveSpecialPricing(date) {
		s.logger.Warn("RemoveSpecialPricing: no entry for boat id=%d date=%s", boatID, date)
		return nil, ErrSpecialPricingNotFound
	}

	return s.save(ctx, "RemoveSpecialPricing", boat)
}

// Вспомогательные методы

func (s *Service) getBoat(ctx context.Context, op string, id int64) (*domain.Boat, error) {
	boat, err := s.boatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			s.logger.Warn("%s: boat id=%d not found", op, id)
			return nil, ErrBoatNotFound
		}
		s.logger.Error("%s: repository error for boat id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return boat, nil
}

func (s *Service) getOwnedBoat(ctx context.Context, op string, id, userID int64) (*domain.Boat, error) {
	boat, err := s.getBoat(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !boat.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%d is not the owner of boat id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}
	return boat, nil
}

func (s *Service) save(ctx context.Context, op string, boat *domain.Boat) (*models.BoatResponse, error) {
	updated, err := s.boatRepo.Update(ctx, boat)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			s.logger.Warn("%s: boat id=%d not found during update", op, boat.ID)
			return nil, ErrBoatNotFound
		}
		s.logger.Error("%s: repository error for boat id=%d: %v", op, boat.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully updated boat id=%d", op, updated.ID)
	resp := models.FromDomainBoat(updated)
	s.warnBlockErrors(op, resp)
	return resp, nil
}

func (s *Service) warnBlockErrors(op string, resp *models.BoatResponse) {
	if len(resp.BlockErrors) > 0 {
		s.logger.Warn("%s: boat id=%d saved with %d invalid availability blocks: %s",
			op, resp.ID, len(resp.BlockErrors), strings.Join(resp.BlockErrors, "; "))
	}
}

// validateBoat проверяет лодку перед сохранением.
// Блоки доступности проверяются по отдельности и сохранение не блокируют.
func validateBoat(boat *domain.Boat) error {
	name := strings.TrimSpace(boat.Name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len(name) > domain.MaxBoatNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxBoatNameLength)
	case boat.MaxGuests < 1 || boat.MaxGuests > domain.MaxGuestsLimit:
		return fmt.Errorf("%w: maxGuests must be between 1 and %d", ErrInvalidInput, domain.MaxGuestsLimit)
	case boat.PricePerHour.IsNegative():
		return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
	case boat.WeekendPrice != nil && boat.WeekendPrice.IsNegative():
		return fmt.Errorf("%w: weekendPrice must not be negative", ErrInvalidInput)
	case boat.Calendar.Enabled && strings.TrimSpace(boat.Calendar.CalendarID) == "":
		return fmt.Errorf("%w: calendarId is required when calendar integration is enabled", ErrInvalidInput)
	case len(boat.AvailabilityBlocks) > domain.MaxBlocksPerBoat:
		return fmt.Errorf("%w: at most %d availability blocks allowed", ErrInvalidInput, domain.MaxBlocksPerBoat)
	case len(boat.Services) > domain.MaxServicesPerBoat:
		return fmt.Errorf("%w: at most %d services allowed", ErrInvalidInput, domain.MaxServicesPerBoat)
	}

	for i := range boat.Services {
		if err := boat.Services[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
