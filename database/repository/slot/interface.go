// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"turfbook/config"
	"turfbook/database"
	"turfbook/models"
	"turfbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SlotRepository is the only write path to slot records. Every status
// mutation is a conditional update guarded by the expected current status, so
// concurrent claims and transitions on the same slot cannot both win.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	ListByDate(ctx context.Context, date string) ([]models.Slot, error)
	FindOverlapping(ctx context.Context, date string, start, end int) (*models.Slot, error)

	// UpdateStatus sets status = to only if the current status equals from.
	// Returns mongo.ErrNoDocuments when no record matched the precondition.
	UpdateStatus(ctx context.Context, slotID string, from, to models.SlotStatus) error
	SetStaff(ctx context.Context, slotID, staffID string) error
	// DeleteFree removes the slot only while it is free. Returns
	// mongo.ErrNoDocuments when the slot is absent or not free.
	DeleteFree(ctx context.Context, slotID string) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("slot index creation failed", zap.Error(err))
	}
	return repo
}
