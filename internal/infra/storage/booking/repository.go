package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/dbmetrics"
	"github.com/m04kA/charter-booking-service/pkg/psqlbuilder"
	"github.com/m04kA/charter-booking-service/pkg/txmanager"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var bookingColumns = []string{
	"id",
	"boat_id",
	"customer_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"slot_name",
	"is_custom_time",
	"guests",
	"total_hours",
	"rate",
	"rate_source",
	"pricing_type",
	"base_price",
	"additional_services",
	"total_amount",
	"commission_amount",
	"down_payment_percentage",
	"down_payment",
	"remaining_balance",
	"currency",
	"status",
	"payment_status",
	"payment_intent_id",
	"boat_name",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"rejection_reason",
	"confirmed_at",
	"rejected_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := json.Marshal(bookedServices(booking.AdditionalServices))
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns[1:len(bookingColumns)-2]...).
		Values(
			booking.BoatID,
			booking.CustomerID,
			booking.StartDate,
			booking.EndDate,
			booking.StartTime,
			booking.EndTime,
			booking.SlotName,
			booking.IsCustomTime,
			booking.Guests,
			booking.TotalHours,
			booking.Rate,
			booking.RateSource,
			booking.PricingType,
			booking.BasePrice,
			string(services),
			booking.TotalAmount,
			booking.CommissionAmount,
			booking.DownPaymentPercentage,
			booking.DownPayment,
			booking.RemainingBalance,
			booking.Currency,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentIntentID,
			booking.BoatName,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
			booking.RejectionReason,
			booking.ConfirmedAt,
			booking.RejectedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, execError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByPaymentIntent получает бронирование по идентификатору платежа
func (r *Repository) GetByPaymentIntent(ctx context.Context, intentID string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByPaymentIntent", squirrel.Eq{"payment_intent_id": intentID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру; пустой фильтр возвращает все бронирования.
//
// Внутри транзакции выборка по лодке и датам блокируется (FOR UPDATE): так
// подтверждение и создание бронирования перепроверяют пересечения атомарно.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.BoatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"boat_id": *filter.BoatID})
	}
	if filter.BoatIDs != nil {
		// squirrel превращает пустой срез в условие (1=0)
		selectBuilder = selectBuilder.Where(squirrel.Eq{"boat_id": filter.BoatIDs})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_date": *filter.Date})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.DateTo})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if filter.HasDateBounds() {
		selectBuilder = selectBuilder.OrderBy("start_date ASC", "start_time ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_date DESC", "start_time DESC", "id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.BoatID != nil && filter.HasDateBounds() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("List - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to (compare-and-swap).
// Если статус уже изменился, возвращает ErrStatusConflict.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	from, to domain.BookingStatus,
	reason *string,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	switch to {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.Set("confirmed_at", squirrel.Expr("NOW()"))
	case domain.StatusRejected:
		updateBuilder = updateBuilder.
			Set("rejected_at", squirrel.Expr("NOW()")).
			Set("rejection_reason", reason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execCAS(ctx, executor, "UpdateStatus", id, query, args); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// UpdatePaymentStatus переводит статус оплаты из from в to (compare-and-swap)
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "payment_status": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execCAS(ctx, executor, "UpdatePaymentStatus", id, query, args); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// SetPaymentIntent сохраняет идентификатор платежа за депозит
func (r *Repository) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_intent_id", intentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentIntent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("SetPaymentIntent - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentIntent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// RejectExpired отклоняет заявки, ожидающие решения, с датой начала раньше before.
// Возвращает количество отклонённых бронирований.
func (r *Repository) RejectExpired(ctx context.Context, before types.Date, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("rejection_reason", reason).
		Set("rejected_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPendingApproval}).
		Where(squirrel.Lt{"start_date": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RejectExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("RejectExpired - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RejectExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// execCAS выполняет условное обновление и различает "не найдено" и "статус уже изменился"
func (r *Repository) execCAS(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusConflict
}

func execError(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		services             []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.BoatID,
		&booking.CustomerID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.SlotName,
		&booking.IsCustomTime,
		&booking.Guests,
		&booking.TotalHours,
		&booking.Rate,
		&booking.RateSource,
		&booking.PricingType,
		&booking.BasePrice,
		&services,
		&booking.TotalAmount,
		&booking.CommissionAmount,
		&booking.DownPaymentPercentage,
		&booking.DownPayment,
		&booking.RemainingBalance,
		&booking.Currency,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentIntentID,
		&booking.BoatName,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Notes,
		&booking.RejectionReason,
		&booking.ConfirmedAt,
		&booking.RejectedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.AdditionalServices = make([]domain.BookedService, 0)
	if len(services) > 0 {
		if err := json.Unmarshal(services, &booking.AdditionalServices); err != nil {
			return nil, fmt.Errorf("additional_services: %w", err)
		}
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func bookedServices(s []domain.BookedService) []domain.BookedService {
	if s == nil {
		return []domain.BookedService{}
	}
	return s
}
