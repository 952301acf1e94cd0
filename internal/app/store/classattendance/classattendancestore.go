// internal/app/store/classattendance/classattendancestore.go
package classattendancestore

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

// Store persists date-keyed engagement reports. Tenant scoping happens one
// level up: handlers resolve the owning class or member inside the caller's
// organization before touching this collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("class_attendances")}
}

func (s *Store) Create(ctx context.Context, a models.ClassAttendance) (models.ClassAttendance, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.ClassAttendance{}, err
	}
	return a, nil
}

// ExistsForClassOnDay reports whether a class-level record already exists in
// the given date's calendar-day window.
func (s *Store) ExistsForClassOnDay(ctx context.Context, classID primitive.ObjectID, date time.Time) (bool, error) {
	start, end := daywindow.Range(date)
	err := s.c.FindOne(ctx, bson.M{
		"class_id": classID,
		"date":     bson.M{"$gte": start, "$lt": end},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsForMemberOnDay reports whether a member-level record already exists
// in the given date's calendar-day window.
func (s *Store) ExistsForMemberOnDay(ctx context.Context, memberID primitive.ObjectID, date time.Time) (bool, error) {
	start, end := daywindow.Range(date)
	err := s.c.FindOne(ctx, bson.M{
		"class_member_id": memberID,
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

// ListByClass returns a class's records, newest first.
func (s *Store) ListByClass(ctx context.Context, classID primitive.ObjectID) ([]models.ClassAttendance, error) {
	return s.list(ctx, bson.M{"class_id": classID})
}

// ListByMember returns a member's records, newest first.
func (s *Store) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.ClassAttendance, error) {
	return s.list(ctx, bson.M{"class_member_id": memberID})
}

// ListByClassInRange returns a class's records inside [from, to], newest
// first.
func (s *Store) ListByClassInRange(ctx context.Context, classID primitive.ObjectID, from, to time.Time) ([]models.ClassAttendance, error) {
	return s.list(ctx, bson.M{
		"class_id": classID,
		"date":     bson.M{"$gte": from, "$lte": to},
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.ClassAttendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.ClassAttendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID loads a single record.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ClassAttendance, error) {
	var a models.ClassAttendance
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.ClassAttendance{}, err
	}
	return a, nil
}

// UpdateCounters replaces a record's counters and refreshes UpdatedAt.
func (s *Store) UpdateCounters(ctx context.Context, id primitive.ObjectID, c models.ServiceCounters) (int64, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"evangelism_visits":        c.EvangelismVisits,
		"materials_distributed":    c.MaterialsDistributed,
		"teachings_sermons":        c.TeachingsSermons,
		"souls_converted":          c.SoulsConverted,
		"people_helped":            c.PeopleHelped,
		"clothes_donated":          c.ClothesDonated,
		"money_food_value":         c.MoneyFoodValue,
		"planned_lesson_readers":   c.PlannedLessonReaders,
		"unplanned_lesson_readers": c.UnplannedLessonReaders,
		"online_lesson_readers":    c.OnlineLessonReaders,
		"planned_bible_readers":    c.PlannedBibleReaders,
		"kesha_readers":            c.KeshaReaders,
		"memory_verse_reciters":    c.MemoryVerseReciters,
		"children_lesson_readers":  c.ChildrenLessonReaders,
		"bible_study_guides":       c.BibleStudyGuides,
		"updated_at":               time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a record by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
