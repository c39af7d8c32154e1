package boat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/dbmetrics"
	"github.com/m04kA/charter-booking-service/pkg/psqlbuilder"
)

var boatColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"location",
	"status",
	"max_guests",
	"price_per_hour",
	"weekend_price",
	"down_payment_percentage",
	"calendar_enabled",
	"calendar_id",
	"availability_blocks",
	"special_pricing",
	"services",
	"created_at",
	"updated_at",
}

// Repository репозиторий лодок (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лодок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую лодку
func (r *Repository) Create(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocks, specialPricing, services, err := encodeCollections(boat)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("boats").
		Columns(
			"owner_id",
			"name",
			"description",
			"location",
			"status",
			"max_guests",
			"price_per_hour",
			"weekend_price",
			"down_payment_percentage",
			"calendar_enabled",
			"calendar_id",
			"availability_blocks",
			"special_pricing",
			"services",
		).
		Values(
			boat.OwnerID,
			boat.Name,
			boat.Description,
			boat.Location,
			boat.Status,
			boat.MaxGuests,
			boat.PricePerHour,
			nullDecimal(boat.WeekendPrice),
			boat.DownPaymentPercentage,
			boat.Calendar.Enabled,
			nullString(boat.Calendar.CalendarID),
			blocks,
			specialPricing,
			services,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&boat.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	boat.CreatedAt = createdAt.Time
	boat.UpdatedAt = updatedAt.Time

	return boat, nil
}

// GetByID получает лодку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Boat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(boatColumns...).
		From("boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	boat, err := scanBoat(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBoatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan boat: %v", ErrScanRow, err)
	}

	return boat, nil
}

// List возвращает лодки по фильтру; пустой фильтр возвращает все лодки
func (r *Repository) List(ctx context.Context, filter domain.BoatFilter) ([]*domain.Boat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(boatColumns...).
		From("boats").
		OrderBy("id ASC")

	if filter.ID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": *filter.ID})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	boats := make([]*domain.Boat, 0)
	for rows.Next() {
		boat, err := scanBoat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		boats = append(boats, boat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return boats, nil
}

// Update сохраняет изменяемые поля лодки целиком
func (r *Repository) Update(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocks, specialPricing, services, err := encodeCollections(boat)
	if err != nil {
		return nil, fmt.Errorf("%w: Update: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("boats").
		Set("name", boat.Name).
		Set("description", boat.Description).
		Set("location", boat.Location).
		Set("status", boat.Status).
		Set("max_guests", boat.MaxGuests).
		Set("price_per_hour", boat.PricePerHour).
		Set("weekend_price", nullDecimal(boat.WeekendPrice)).
		Set("down_payment_percentage", boat.DownPaymentPercentage).
		Set("calendar_enabled", boat.Calendar.Enabled).
		Set("calendar_id", nullString(boat.Calendar.CalendarID)).
		Set("availability_blocks", blocks).
		Set("special_pricing", specialPricing).
		Set("services", services).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": boat.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBoatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	boat.UpdatedAt = updatedAt.Time

	return boat, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBoat(row rowScanner) (*domain.Boat, error) {
	var (
		boat                 domain.Boat
		weekendPrice         decimal.NullDecimal
		calendarID           sql.NullString
		blocks               []byte
		specialPricing       []byte
		services             []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&boat.ID,
		&boat.OwnerID,
		&boat.Name,
		&boat.Description,
		&boat.Location,
		&boat.Status,
		&boat.MaxGuests,
		&boat.PricePerHour,
		&weekendPrice,
		&boat.DownPaymentPercentage,
		&boat.Calendar.Enabled,
		&calendarID,
		&blocks,
		&specialPricing,
		&services,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekendPrice.Valid {
		boat.WeekendPrice = &weekendPrice.Decimal
	}
	boat.Calendar.CalendarID = calendarID.String
	boat.CreatedAt = createdAt.Time
	boat.UpdatedAt = updatedAt.Time

	if boat.AvailabilityBlocks, err = decodeBlocks(blocks); err != nil {
		return nil, fmt.Errorf("availability_blocks: %w", err)
	}
	if boat.SpecialPricing, err = decodeSpecialPricing(specialPricing); err != nil {
		return nil, fmt.Errorf("special_pricing: %w", err)
	}
	if boat.Services, err = decodeServices(services); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}

	return &boat, nil
}

// encodeCollections сериализует JSONB-колонки; lib/pq передаёт []byte как bytea, поэтому возвращаются строки
func encodeCollections(boat *domain.Boat) (blocks, specialPricing, services string, err error) {
	b, err := encodeBlocks(boat.AvailabilityBlocks)
	if err != nil {
		return "", "", "", err
	}
	sp, err := encodeSpecialPricing(boat.SpecialPricing)
	if err != nil {
		return "", "", "", err
	}
	sv, err := encodeServices(boat.Services)
	if err != nil {
		return "", "", "", err
	}
	return string(b), string(sp), string(sv), nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
