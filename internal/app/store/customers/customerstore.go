// internal/app/store/customers/customerstore.go
package customerstore

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
	return &Store{c: db.Collection("customers")}
}

func (s *Store) Create(ctx context.Context, cust models.Customer) (models.Customer, error) {
	now := time.Now().UTC()
	cust.ID = primitive.NewObjectID()
	cust.FirstName = normalize.Name(cust.FirstName)
	cust.LastName = normalize.Name(cust.LastName)
	cust.Email = normalize.Email(cust.Email)
	cust.PhoneNumber = normalize.Phone(cust.PhoneNumber)
	cust.CreatedAt = now
	cust.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cust); err != nil {
		return models.Customer{}, err
	}
	return cust, nil
}

// GetByIDInOrg loads a customer scoped to one organization.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.Customer, error) {
	var cust models.Customer
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&cust); err != nil {
		return models.Customer{}, err
	}
	return cust, nil
}

// ListByOrganization returns all customers in an organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Customer, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var customers []models.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Update holds the fields a customer update may change. Nil pointers leave
// the stored value untouched.
type Update struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Address     *string
}

// UpdateInOrg applies a partial update, scoped to the caller's organization.
// Returns the number of documents matched (0 or 1).
func (s *Store) UpdateInOrg(ctx context.Context, id, orgID primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FirstName != nil {
		set["first_name"] = normalize.Name(*upd.FirstName)
	}
	if upd.LastName != nil {
		set["last_name"] = normalize.Name(*upd.LastName)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.PhoneNumber != nil {
		set["phone_number"] = normalize.Phone(*upd.PhoneNumber)
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInOrg removes a customer, scoped to the caller's organization.
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExistsInOrg reports whether a customer with this email already exists
// in the organization. Customers with no email never collide.
func (s *Store) EmailExistsInOrg(ctx context.Context, orgID primitive.ObjectID, email string) (bool, error) {
	email = normalize.Email(email)
	if email == "" {
		return false, nil
	}
	err := s.c.FindOne(ctx, bson.M{"organization_id": orgID, "email": email}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
