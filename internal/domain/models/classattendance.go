// internal/domain/models/classattendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceCounters holds the per-date engagement tallies a class (or class
// member) reports. The three groups mirror the paper report card the records
// were transcribed from:
//
//	A: service to Jesus, B: service to community, C: lesson and bible reading.
//
// Every counter must be non-negative.
type ServiceCounters struct {
	// A: service to Jesus
	EvangelismVisits     int `bson:"evangelism_visits" json:"evangelismVisits"`
	MaterialsDistributed int `bson:"materials_distributed" json:"materialsDistributed"`
	TeachingsSermons     int `bson:"teachings_sermons" json:"teachingsSermons"`
	SoulsConverted       int `bson:"souls_converted" json:"soulsConverted"`

	// B: service to community
	PeopleHelped   int `bson:"people_helped" json:"peopleHelped"`
	ClothesDonated int `bson:"clothes_donated" json:"clothesDonated"`
	MoneyFoodValue int `bson:"money_food_value" json:"moneyFoodValue"`

	// C: lesson and bible reading
	PlannedLessonReaders   int `bson:"planned_lesson_readers" json:"plannedLessonReaders"`
	UnplannedLessonReaders int `bson:"unplanned_lesson_readers" json:"unplannedLessonReaders"`
	OnlineLessonReaders    int `bson:"online_lesson_readers" json:"onlineLessonReaders"`
	PlannedBibleReaders    int `bson:"planned_bible_readers" json:"plannedBibleReaders"`
	KeshaReaders           int `bson:"kesha_readers" json:"keshaReaders"`
	MemoryVerseReciters    int `bson:"memory_verse_reciters" json:"memoryVerseReciters"`
	ChildrenLessonReaders  int `bson:"children_lesson_readers" json:"childrenLessonReaders"`
	BibleStudyGuides       int `bson:"bible_study_guides" json:"bibleStudyGuides"`
}

// FirstNegative returns the JSON name of the first negative counter, or ""
// when all counters are valid.
func (c ServiceCounters) FirstNegative() string {
	checks := []struct {
		name  string
		value int
	}{
		{"evangelismVisits", c.EvangelismVisits},
		{"materialsDistributed", c.MaterialsDistributed},
		{"teachingsSermons", c.TeachingsSermons},
		{"soulsConverted", c.SoulsConverted},
		{"peopleHelped", c.PeopleHelped},
		{"clothesDonated", c.ClothesDonated},
		{"moneyFoodValue", c.MoneyFoodValue},
		{"plannedLessonReaders", c.PlannedLessonReaders},
		{"unplannedLessonReaders", c.UnplannedLessonReaders},
		{"onlineLessonReaders", c.OnlineLessonReaders},
		{"plannedBibleReaders", c.PlannedBibleReaders},
		{"keshaReaders", c.KeshaReaders},
		{"memoryVerseReciters", c.MemoryVerseReciters},
		{"childrenLessonReaders", c.ChildrenLessonReaders},
		{"bibleStudyGuides", c.BibleStudyGuides},
	}
	for _, f := range checks {
		if f.value < 0 {
			return f.name
		}
	}
	return ""
}

// ClassAttendance is one date-keyed engagement report. A record is keyed by
// either a class or an individual class member, never both: class-level
// records come from the nested class routes, member-level records from the
// standalone class-attendance routes. At most one record may exist per
// subject per calendar day.
type ClassAttendance struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClassID       *primitive.ObjectID `bson:"class_id,omitempty" json:"class,omitempty"`
	ClassMemberID *primitive.ObjectID `bson:"class_member_id,omitempty" json:"classMember,omitempty"`
	Date          time.Time           `bson:"date" json:"date"`

	ServiceCounters `bson:",inline"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
