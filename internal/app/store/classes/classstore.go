// internal/app/store/classes/classstore.go
package classstore

import (
	"context"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/normalize"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classes")}
}

func (s *Store) Create(ctx context.Context, class models.Class) (models.Class, error) {
	now := time.Now().UTC()
	class.ID = primitive.NewObjectID()
	class.Name = normalize.Name(class.Name)
	class.CreatedAt = now
	class.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, class); err != nil {
		return models.Class{}, err
	}
	return class, nil
}

// GetByIDInOrg loads a class scoped to one organization. Cross-tenant reads
// come back as mongo.ErrNoDocuments.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.Class, error) {
	var class models.Class
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&class); err != nil {
		return models.Class{}, err
	}
	return class, nil
}

// ListByOrganization returns all classes in an organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Class, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ListByInstructor returns the classes taught by one instructor within an
// organization.
func (s *Store) ListByInstructor(ctx context.Context, orgID, instructorID primitive.ObjectID) ([]models.Class, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID, "instructor_id": instructorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Update modifies a class's mutable fields, scoped to the caller's
// organization. Returns the number of documents matched (0 or 1).
func (s *Store) Update(ctx context.Context, id, orgID primitive.ObjectID, name string, instructorID primitive.ObjectID) (int64, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = normalize.Name(name)
	}
	if !instructorID.IsZero() {
		set["instructor_id"] = instructorID
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInOrg removes a class, scoped to the caller's organization.
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
