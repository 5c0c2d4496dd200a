package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoutineStore implements store.RoutineStore on the rutinas collection.
type RoutineStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewRoutineStore returns a RoutineStore bound to db.
func NewRoutineStore(db *mongo.Database, logger *slog.Logger) *RoutineStore {
	return &RoutineStore{
		coll:   db.Collection(CollectionRoutines),
		logger: logger.With(slog.String("store", "routine")),
	}
}

var _ store.RoutineStore = (*RoutineStore)(nil)

// Create implements store.RoutineStore.
func (s *RoutineStore) Create(ctx context.Context, r *domain.Routine) error {
	res, err := s.coll.InsertOne(ctx, routineDocFrom(r))
	if err != nil {
		s.logger.Error("failed to insert routine", slog.String("error", err.Error()))
		return mapError(err, store.ErrRoutineNotFound)
	}
	r.ID = insertedID(res)
	return nil
}

// GetByID implements store.RoutineStore.
func (s *RoutineStore) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrRoutineNotFound
	}
	var doc routineDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err, store.ErrRoutineNotFound)
	}
	return doc.toDomain(), nil
}

// List implements store.RoutineStore.
func (s *RoutineStore) List(ctx context.Context) ([]*domain.Routine, error) {
	var docs []routineDoc
	if err := findAll(ctx, s.coll, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Routine, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update implements store.RoutineStore.
func (s *RoutineStore) Update(ctx context.Context, id string, patch *domain.RoutinePatch) error {
	return updateByID(ctx, s.coll, id, routinePatchSet(patch), store.ErrRoutineNotFound)
}

// Delete implements store.RoutineStore.
func (s *RoutineStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, store.ErrRoutineNotFound)
}

// DeleteByStudent implements store.RoutineStore.
func (s *RoutineStore) DeleteByStudent(ctx context.Context, nombre, dni string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"nombreAlumno": nombre, "dniAlumno": dni})
	if err != nil {
		return 0, fmt.Errorf("failed to delete routines of %s: %w", nombre, err)
	}
	return res.DeletedCount, nil
}

// ReassignStudent implements store.RoutineStore.
func (s *RoutineStore) ReassignStudent(ctx context.Context, oldNombre, oldDNI, newNombre, newDNI string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"nombreAlumno": oldNombre, "dniAlumno": oldDNI},
		bson.M{"$set": bson.M{"nombreAlumno": newNombre, "dniAlumno": newDNI}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign routines of %s: %w", oldNombre, err)
	}
	return res.ModifiedCount, nil
}
