package boat

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Строки JSONB-колонок. Формат хранения отделён от доменных структур.

type blockRow struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type specialPricingRow struct {
	Date         types.Date      `json:"date"`
	PricingType  string          `json:"pricing_type"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	Name         *string         `json:"name,omitempty"`
	StartTime    string          `json:"start_time,omitempty"`
	EndTime      string          `json:"end_time,omitempty"`
}

type serviceRow struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	PricingType string          `json:"pricing_type,omitempty"`
	Description *string         `json:"description,omitempty"`
}

func encodeBlocks(blocks []domain.AvailabilityBlock) ([]byte, error) {
	rows := make([]blockRow, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, blockRow{Name: b.Name, StartTime: string(b.StartTime), EndTime: string(b.EndTime)})
	}
	return json.Marshal(rows)
}

func decodeBlocks(data []byte) ([]domain.AvailabilityBlock, error) {
	var rows []blockRow
	if err := unmarshal(data, &rows); err != nil {
		return nil, err
	}
	blocks := make([]domain.AvailabilityBlock, 0, len(rows))
	for _, r := range rows {
		blocks = append(blocks, domain.AvailabilityBlock{
			Name:      r.Name,
			StartTime: types.TimeString(r.StartTime),
			EndTime:   types.TimeString(r.EndTime),
		})
	}
	return blocks, nil
}

func encodeSpecialPricing(entries []domain.SpecialPricingEntry) ([]byte, error) {
	rows := make([]specialPricingRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, specialPricingRow{
			Date:         e.Date,
			PricingType:  string(e.PricingType),
			PricePerHour: e.PricePerHour,
			PricePerDay:  e.PricePerDay,
			Name:         e.Name,
			StartTime:    string(e.StartTime),
			EndTime:      string(e.EndTime),
		})
	}
	return json.Marshal(rows)
}

func decodeSpecialPricing(data []byte) ([]domain.SpecialPricingEntry, error) {
	var rows []specialPricingRow
	if err := unmarshal(data, &rows); err != nil {
		return nil, err
	}
	entries := make([]domain.SpecialPricingEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.SpecialPricingEntry{
			Date:         r.Date,
			PricingType:  domain.SpecialPricingType(r.PricingType),
			PricePerHour: r.PricePerHour,
			PricePerDay:  r.PricePerDay,
			Name:         r.Name,
			StartTime:    types.TimeString(r.StartTime),
			EndTime:      types.TimeString(r.EndTime),
		})
	}
	return entries, nil
}

func encodeServices(services []domain.Service) ([]byte, error) {
	rows := make([]serviceRow, 0, len(services))
	for _, s := range services {
		rows = append(rows, serviceRow{
			Name:        s.Name,
			Price:       s.Price,
			PricingType: string(s.PricingType),
			Description: s.Description,
		})
	}
	return json.Marshal(rows)
}

// decodeServices восстанавливает тип цены по описанию для старых записей без pricing_type
func decodeServices(data []byte) ([]domain.Service, error) {
	var rows []serviceRow
	if err := unmarshal(data, &rows); err != nil {
		return nil, err
	}
	services := make([]domain.Service, 0, len(rows))
	for _, r := range rows {
		pricingType := domain.ServicePricingType(r.PricingType)
		if pricingType == "" {
			description := ""
			if r.Description != nil {
				description = *r.Description
			}
			pricingType = domain.InferServicePricingType(description)
		}
		services = append(services, domain.Service{
			Name:        r.Name,
			Price:       r.Price,
			PricingType: pricingType,
			Description: r.Description,
		})
	}
	return services, nil
}

func unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
