// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureClasses(ctx, db); err != nil {
		problems = append(problems, "classes: "+err.Error())
	}
	if err := ensureClassMembers(ctx, db); err != nil {
		problems = append(problems, "class_members: "+err.Error())
	}
	if err := ensureClassAttendances(ctx, db); err != nil {
		problems = append(problems, "class_attendances: "+err.Error())
	}
	if err := ensureCommunionAttendances(ctx, db); err != nil {
		problems = append(problems, "communion_attendances: "+err.Error())
	}
	if err := ensureCustomers(ctx, db); err != nil {
		problems = append(problems, "customers: "+err.Error())
	}
	if err := ensureLessons(ctx, db); err != nil {
		problems = append(problems, "lessons: "+err.Error())
	}
	if err := ensureAttendances(ctx, db); err != nil {
		problems = append(problems, "attendances: "+err.Error())
	}
	if err := ensureUserReports(ctx, db); err != nil {
		problems = append(problems, "user_reports: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// loadExisting maps key signature -> index for one collection.
func loadExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing, err := loadExisting(ctx, coll)
	if err != nil {
		zap.L().Warn("failed to list existing indexes",
			zap.String("collection", coll.Name()),
			zap.Error(err))
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Name or options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is unique across all users, regardless of organization.
		// Sparse: regular users are stored without an email, and absent
		// fields must not collide on the index.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_users_email"),
		},
		// Org-scoped lists and counts (also serves the first-admin check).
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_users_org"),
		},
		// Per-org role filters (instructor lists, admin lookups).
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_org_role"),
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("organizations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Organization names are globally unique (case folded via name_ci).
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_orgs_nameci"),
		},
	})
}

func ensureClasses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("classes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_classes_org"),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "instructor_id", Value: 1}},
			Options: options.Index().SetName("idx_classes_org_instructor"),
		},
	})
}

func ensureClassMembers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("class_members")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "class_id", Value: 1}},
			Options: options.Index().SetName("idx_classmembers_org_class"),
		},
	})
}

func ensureClassAttendances(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("class_attendances")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Same-day duplicate checks and date-range reads per class.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_classatt_class_date"),
		},
		{
			Keys:    bson.D{{Key: "class_member_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_classatt_member_date"),
		},
	})
}

func ensureCommunionAttendances(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("communion_attendances")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Same-day duplicate scan checks per user.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "scanned_at", Value: 1}},
			Options: options.Index().SetName("idx_communion_user_scanned"),
		},
		// Org-scoped latest/range/stats reads.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "scanned_at", Value: -1}},
			Options: options.Index().SetName("idx_communion_org_scanned"),
		},
	})
}

func ensureCustomers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("customers")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_customers_org"),
		},
	})
}

func ensureLessons(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("lessons")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "date_of_register", Value: -1}},
			Options: options.Index().SetName("idx_lessons_org_date"),
		},
	})
}

func ensureAttendances(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("attendances")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Same-day duplicate checks and range reads per org.
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_attendances_org_date"),
		},
	})
}

func ensureUserReports(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("user_reports")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reported_user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reports_reported_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reports_status_created"),
		},
	})
}
