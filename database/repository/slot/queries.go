// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfbook/models"
)

func (r *mongoSlotRepo) ListByDate(ctx context.Context, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// FindOverlapping returns any slot on the given date whose half-open window
// intersects [start, end), or mongo.ErrNoDocuments when none does.
func (r *mongoSlotRepo) FindOverlapping(ctx context.Context, date string, start, end int) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":  date,
		"start": bson.M{"$lt": end},
		"end":   bson.M{"$gt": start},
	}
	var slot models.Slot
	if err := r.coll.FindOne(ctx, filter).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}
