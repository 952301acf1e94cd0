// internal/app/store/attendance/attendancestore.go
package attendancestore

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
	return &Store{c: db.Collection("attendances")}
}

func (s *Store) Create(ctx context.Context, a models.Attendance) (models.Attendance, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Date.IsZero() {
		a.Date = now
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Attendance{}, err
	}
	return a, nil
}

// ExistsOnDay reports whether the organization already has a head-count
// record inside the given date's calendar-day window.
func (s *Store) ExistsOnDay(ctx context.Context, orgID primitive.ObjectID, date time.Time) (bool, error) {
	start, end := daywindow.Range(date)
	err := s.c.FindOne(ctx, bson.M{
		"organization_id": orgID,
		"date":            bson.M{"$gte": start, "$lt": end},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByIDInOrg loads a record scoped to one organization.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.Attendance, error) {
	var a models.Attendance
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&a); err != nil {
		return models.Attendance{}, err
	}
	return a, nil
}

// ListByOrganization returns an organization's records, newest first.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.Attendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateCountsInOrg replaces a record's head counts, scoped to the caller's
// organization. Returns the number of documents matched (0 or 1).
func (s *Store) UpdateCountsInOrg(ctx context.Context, id, orgID primitive.ObjectID, adultCount, minorCount int) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{"$set": bson.M{
			"adult_count": adultCount,
			"minor_count": minorCount,
			"updated_at":  time.Now().UTC(),
		}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInOrg removes a record, scoped to the caller's organization.
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
