// internal/app/store/lessons/lessonstore.go
package lessonstore

import (
	"context"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/normalize"
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
	return &Store{c: db.Collection("lessons")}
}

func (s *Store) Create(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.Name = normalize.Name(l.Name)
	if l.DateOfRegister.IsZero() {
		l.DateOfRegister = now
	}
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.Lesson{}, err
	}
	return l, nil
}

// GetByIDInOrg loads a lesson scoped to one organization.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.Lesson, error) {
	var l models.Lesson
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&l); err != nil {
		return models.Lesson{}, err
	}
	return l, nil
}

// ListByOrganization returns an organization's lessons, newest first.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_of_register", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var lessons []models.Lesson
	if err := cur.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// Update holds the fields a lesson update may change. Nil pointers leave the
// stored value untouched.
type Update struct {
	Name     *string
	Age      *int
	Price    *float64
	Quantity *int
}

// UpdateInOrg applies a partial update, scoped to the caller's organization.
func (s *Store) UpdateInOrg(ctx context.Context, id, orgID primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Quantity != nil {
		set["quantity"] = *upd.Quantity
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInOrg removes a lesson, scoped to the caller's organization.
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
