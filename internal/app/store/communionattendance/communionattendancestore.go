// internal/app/store/communionattendance/communionattendancestore.go
package communionattendancestore

import (
	"context"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/daywindow"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("communion_attendances")}
}

func (s *Store) Create(ctx context.Context, a models.CommunionAttendance) (models.CommunionAttendance, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.ScannedAt.IsZero() {
		a.ScannedAt = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.CommunionAttendance{}, err
	}
	return a, nil
}

// ExistsForUserOnDay reports whether the user was already scanned inside the
// given time's calendar-day window.
func (s *Store) ExistsForUserOnDay(ctx context.Context, userID primitive.ObjectID, at time.Time) (bool, error) {
	start, end := daywindow.Range(at)
	err := s.c.FindOne(ctx, bson.M{
		"user_id":    userID,
		"scanned_at": bson.M{"$gte": start, "$lt": end},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Latest returns the organization's most recent scans, newest first,
// capped at limit.
func (s *Store) Latest(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]models.CommunionAttendance, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scanned_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.CommunionAttendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListInRange returns the organization's scans inside [from, to], newest
// first.
func (s *Store) ListInRange(ctx context.Context, orgID primitive.ObjectID, from, to time.Time) ([]models.CommunionAttendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scanned_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{
		"organization_id": orgID,
		"scanned_at":      bson.M{"$gte": from, "$lte": to},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.CommunionAttendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DayStat is one day's scan count for the stats endpoint.
type DayStat struct {
	Date  time.Time `bson:"_id" json:"date"`
	Count int64     `bson:"count" json:"count"`
}

// StatsByDay groups the organization's scans by calendar day inside
// [from, to], oldest day first.
func (s *Store) StatsByDay(ctx context.Context, orgID primitive.ObjectID, from, to time.Time) ([]DayStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"organization_id": orgID,
			"scanned_at":      bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateTrunc": bson.M{
				"date": "$scanned_at",
				"unit": "day",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var stats []DayStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
