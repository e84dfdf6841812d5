// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"turfbook/config"
	"turfbook/database"
	"turfbook/models"
	"turfbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BookingRepository is the only write path to booking records. Status and
// payment mutations are conditional updates guarded by the expected current
// value, so two staff members racing on the same booking cannot both win.
// Bookings are never deleted; each status change is appended to the history.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)

	// UpdateStatus sets status = to only if the current status equals from,
	// appending a history entry. Returns mongo.ErrNoDocuments on a miss.
	UpdateStatus(ctx context.Context, bookingID string, from, to models.BookingStatus, at time.Time) error
	// UpdatePayment sets the payment status (and reference, when non-empty)
	// only if the current payment status is one of allowedFrom.
	UpdatePayment(ctx context.Context, bookingID string, allowedFrom []models.PaymentStatus, to models.PaymentStatus, ref string, at time.Time) error
	SetCustomerName(ctx context.Context, bookingID, name string, at time.Time) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("booking index creation failed", zap.Error(err))
	}
	return repo
}
