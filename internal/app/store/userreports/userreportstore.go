// internal/app/store/userreports/userreportstore.go
package userreportstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrBadStatus reports a status outside the review lifecycle.
var ErrBadStatus = errors.New(`status must be "pending"|"reviewed"|"resolved"`)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_reports")}
}

func (s *Store) Create(ctx context.Context, r models.UserReport) (models.UserReport, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	if r.Status == "" {
		r.Status = models.ReportPending
	}
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.UserReport{}, err
	}
	return r, nil
}

// List returns reports, newest first. An empty status returns all of them.
func (s *Store) List(ctx context.Context, status string) ([]models.UserReport, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var reports []models.UserReport
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateStatus moves a report through its review lifecycle. Returns the
// number of documents matched (0 or 1).
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	switch status {
	case models.ReportPending, models.ReportReviewed, models.ReportResolved:
	default:
		return 0, ErrBadStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
