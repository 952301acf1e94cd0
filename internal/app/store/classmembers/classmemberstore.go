// internal/app/store/classmembers/classmemberstore.go
package classmemberstore

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
	return &Store{c: db.Collection("class_members")}
}

func (s *Store) Create(ctx context.Context, m models.ClassMember) (models.ClassMember, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.FirstName = normalize.Name(m.FirstName)
	m.SecondName = normalize.Name(m.SecondName)
	m.LastName = normalize.Name(m.LastName)
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ClassMember{}, err
	}
	return m, nil
}

// GetByIDInOrg loads a class member scoped to one organization.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.ClassMember, error) {
	var m models.ClassMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&m); err != nil {
		return models.ClassMember{}, err
	}
	return m, nil
}

// ListByClass returns the members of one class within an organization.
func (s *Store) ListByClass(ctx context.Context, orgID, classID primitive.ObjectID) ([]models.ClassMember, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID, "class_id": classID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var members []models.ClassMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListByOrganization returns all class members in an organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.ClassMember, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var members []models.ClassMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update modifies a member's names, scoped to the caller's organization.
func (s *Store) Update(ctx context.Context, id, orgID primitive.ObjectID, firstName, secondName, lastName string) (int64, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if firstName != "" {
		set["first_name"] = normalize.Name(firstName)
	}
	if secondName != "" {
		set["second_name"] = normalize.Name(secondName)
	}
	if lastName != "" {
		set["last_name"] = normalize.Name(lastName)
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInOrg removes a class member, scoped to the caller's organization.
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
