package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "consultpay/internal/bookings/errors"
	"consultpay/pkg/config"
	"consultpay/pkg/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRecord is the relational row for a booking.
type BookingRecord struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	PatientName     string    `gorm:"size:255;not null"`
	Email           string    `gorm:"size:255;not null"`
	MobileNumber    string    `gorm:"size:32;not null"`
	BookingDateTime time.Time `gorm:"not null"`
	Reason          string    `gorm:"type:text;not null"`
	OrderID         string    `gorm:"size:64;not null;uniqueIndex"`
	Amount          float64   `gorm:"not null"`
	Currency        string    `gorm:"size:3;not null;default:'INR'"`
	Status          string    `gorm:"size:32;not null;default:'pending';index"`
	PaymentID       string    `gorm:"size:128"`
	PaymentMethod   string    `gorm:"size:64"`
	PaymentTime     string    `gorm:"size:64"`
	BankReference   string    `gorm:"size:128"`
	PaymentMessage  string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BookingRecord) TableName() string {
	return "bookings"
}

func newBookingRecord(b *model.Booking) *BookingRecord {
	return &BookingRecord{
		ID:              b.ID,
		PatientName:     b.PatientName,
		Email:           b.Email,
		MobileNumber:    b.MobileNumber,
		BookingDateTime: b.BookingDateTime,
		Reason:          b.Reason,
		OrderID:         b.OrderID,
		Amount:          b.Amount,
		Currency:        b.Currency,
		Status:          b.Status,
		PaymentID:       b.PaymentID,
		PaymentMethod:   b.PaymentMethod,
		PaymentTime:     b.PaymentTime,
		BankReference:   b.BankReference,
		PaymentMessage:  b.PaymentMessage,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRecord) toModel() *model.Booking {
	return &model.Booking{
		ID:              r.ID,
		PatientName:     r.PatientName,
		Email:           r.Email,
		MobileNumber:    r.MobileNumber,
		BookingDateTime: r.BookingDateTime,
		Reason:          r.Reason,
		OrderID:         r.OrderID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Status:          r.Status,
		PaymentID:       r.PaymentID,
		PaymentMethod:   r.PaymentMethod,
		PaymentTime:     r.PaymentTime,
		BankReference:   r.BankReference,
		PaymentMessage:  r.PaymentMessage,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type postgresBookingRepository struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewPostgresBookingRepository(cfg *config.Config) BookingRepository {
	return &postgresBookingRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

// AutoMigrate creates or updates the bookings table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&BookingRecord{})
}

func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	stampCreated(booking)
	record := newBookingRecord(booking)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", bookingserrors.ErrDuplicateOrderID, booking.OrderID)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = record.ID
	return nil
}

func (r *postgresBookingRepository) FindByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var record BookingRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return record.toModel(), nil
}

func (r *postgresBookingRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, update model.BookingStatusUpdate) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	var records []BookingRecord
	result := r.db.WithContext(ctx).
		Model(&records).
		Clauses(clause.Returning{}).
		Where("order_id = ?", orderID).
		Updates(statusFields(update))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(records) == 0 {
		return nil, bookingserrors.ErrNotFound
	}

	return records[0].toModel(), nil
}

func (r *postgresBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
