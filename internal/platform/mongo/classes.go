package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxEnrollAttempts bounds how often AddStudent re-evaluates a class whose
// state changed between the conditional update and the follow-up read.
const maxEnrollAttempts = 3

// ClassStore implements store.ClassStore on the clases collection.
type ClassStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewClassStore returns a ClassStore bound to db.
func NewClassStore(db *mongo.Database, logger *slog.Logger) *ClassStore {
	return &ClassStore{
		coll:   db.Collection(CollectionClasses),
		logger: logger.With(slog.String("store", "class")),
	}
}

var _ store.ClassStore = (*ClassStore)(nil)

// enrolledCount evaluates to the size of the enrollment array, treating a
// missing array as empty.
var enrolledCount = bson.M{"$size": bson.M{"$ifNull": bson.A{"$alumnosInscriptos", bson.A{}}}}

// Create implements store.ClassStore.
func (s *ClassStore) Create(ctx context.Context, c *domain.Class) error {
	res, err := s.coll.InsertOne(ctx, classDocFrom(c))
	if err != nil {
		s.logger.Error("failed to insert class", slog.String("error", err.Error()))
		return mapError(err, store.ErrClassNotFound)
	}
	c.ID = insertedID(res)
	if c.AlumnosInscriptos == nil {
		c.AlumnosInscriptos = []string{}
	}
	return nil
}

// GetByID implements store.ClassStore.
func (s *ClassStore) GetByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrClassNotFound
	}
	return s.get(ctx, oid)
}

// List implements store.ClassStore.
func (s *ClassStore) List(ctx context.Context) ([]*domain.Class, error) {
	var docs []classDoc
	if err := findAll(ctx, s.coll, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Class, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update implements store.ClassStore. A new capacity is applied only when the
// stored enrollment count does not exceed it.
func (s *ClassStore) Update(ctx context.Context, id string, patch *domain.ClassPatch) error {
	oid, ok := parseID(id)
	if !ok {
		return store.ErrClassNotFound
	}
	set := classPatchSet(patch)
	if len(set) == 0 {
		return exists(ctx, s.coll, bson.M{"_id": oid}, store.ErrClassNotFound)
	}

	filter := bson.M{"_id": oid}
	if patch.Capacidad != nil {
		filter["$expr"] = bson.M{"$lte": bson.A{enrolledCount, *patch.Capacidad}}
	}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return mapError(err, store.ErrClassNotFound)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	if err := exists(ctx, s.coll, bson.M{"_id": oid}, store.ErrClassNotFound); err != nil {
		return err
	}
	return store.ErrCapacityReached
}

// Delete implements store.ClassStore.
func (s *ClassStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, store.ErrClassNotFound)
}

// DeleteByTeacherEmail implements store.ClassStore.
func (s *ClassStore) DeleteByTeacherEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"emailProfesor": email})
	if err != nil {
		return 0, fmt.Errorf("failed to delete classes of %s: %w", email, err)
	}
	return res.DeletedCount, nil
}

// ReassignTeacher implements store.ClassStore.
func (s *ClassStore) ReassignTeacher(ctx context.Context, oldEmail, newNombre, newEmail string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"emailProfesor": oldEmail},
		bson.M{"$set": bson.M{"nombreProfesor": newNombre, "emailProfesor": newEmail}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign classes of %s: %w", oldEmail, err)
	}
	return res.ModifiedCount, nil
}

// AddStudent implements store.ClassStore. The membership and capacity checks
// are part of the update filter, so the push happens only if both hold at
// write time.
func (s *ClassStore) AddStudent(ctx context.Context, classID, studentID string) error {
	oid, ok := parseID(classID)
	if !ok {
		return store.ErrClassNotFound
	}

	filter := bson.M{
		"_id":               oid,
		"alumnosInscriptos": bson.M{"$ne": studentID},
		"$or": bson.A{
			bson.M{"capacidad": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{enrolledCount, "$capacidad"}}},
		},
	}
	update := bson.M{"$push": bson.M{"alumnosInscriptos": studentID}}

	for attempt := 0; attempt < maxEnrollAttempts; attempt++ {
		res, err := s.coll.UpdateOne(ctx, filter, update)
		if err != nil {
			return mapError(err, store.ErrClassNotFound)
		}
		if res.MatchedCount == 1 {
			return nil
		}

		c, err := s.get(ctx, oid)
		if err != nil {
			return err
		}
		switch {
		case c.IsEnrolled(studentID):
			return store.ErrAlreadyMember
		case c.IsFull():
			return store.ErrCapacityReached
		}
		// A concurrent unenroll freed a seat between the two calls.
		s.logger.Debug("retrying enrollment", slog.String("class_id", classID), slog.Int("attempt", attempt+1))
	}
	return store.ErrCapacityReached
}

// RemoveStudent implements store.ClassStore.
func (s *ClassStore) RemoveStudent(ctx context.Context, classID, studentID string) error {
	oid, ok := parseID(classID)
	if !ok {
		return store.ErrClassNotFound
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "alumnosInscriptos": studentID},
		bson.M{"$pull": bson.M{"alumnosInscriptos": studentID}},
	)
	if err != nil {
		return mapError(err, store.ErrClassNotFound)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	if err := exists(ctx, s.coll, bson.M{"_id": oid}, store.ErrClassNotFound); err != nil {
		return err
	}
	return store.ErrNotMember
}

// RemoveStudentFromAll implements store.ClassStore.
func (s *ClassStore) RemoveStudentFromAll(ctx context.Context, studentID string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"alumnosInscriptos": studentID},
		bson.M{"$pull": bson.M{"alumnosInscriptos": studentID}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to remove student %s from classes: %w", studentID, err)
	}
	return res.ModifiedCount, nil
}

func (s *ClassStore) get(ctx context.Context, oid primitive.ObjectID) (*domain.Class, error) {
	var doc classDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err, store.ErrClassNotFound)
	}
	return doc.toDomain(), nil
}
