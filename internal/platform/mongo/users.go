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

// StudentStore implements store.StudentStore on the alumnos collection.
type StudentStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewStudentStore returns a StudentStore bound to db.
func NewStudentStore(db *mongo.Database, logger *slog.Logger) *StudentStore {
	return &StudentStore{
		coll:   db.Collection(CollectionStudents),
		logger: logger.With(slog.String("store", "student")),
	}
}

var _ store.StudentStore = (*StudentStore)(nil)

// Create implements store.StudentStore.
func (s *StudentStore) Create(ctx context.Context, st *domain.Student) error {
	doc := studentDoc{UserDoc: userDocFrom(st.User), Ingreso: st.Ingreso, Plan: st.Plan}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error("failed to insert student", slog.String("error", err.Error()))
		return mapError(err, store.ErrStudentNotFound)
	}
	st.ID = insertedID(res)
	return nil
}

// GetByID implements store.StudentStore.
func (s *StudentStore) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrStudentNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByIDs implements store.StudentStore.
func (s *StudentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Student, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Student{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// List implements store.StudentStore.
func (s *StudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	return s.find(ctx, bson.M{})
}

// FindByEmail implements store.StudentStore.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByNameAndDNI implements store.StudentStore.
func (s *StudentStore) FindByNameAndDNI(ctx context.Context, nombre, dni string) (*domain.Student, error) {
	return s.findOne(ctx, bson.M{"nombre": nombre, "dni": dni})
}

// Update implements store.StudentStore.
func (s *StudentStore) Update(ctx context.Context, id string, patch *domain.StudentPatch) error {
	set := bson.M{}
	userPatchSet(set, &patch.UserPatch)
	if patch.Ingreso != nil {
		set["ingreso"] = *patch.Ingreso
	}
	if patch.Plan != nil {
		set["plan"] = *patch.Plan
	}
	return updateByID(ctx, s.coll, id, set, store.ErrStudentNotFound)
}

// Delete implements store.StudentStore.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, store.ErrStudentNotFound)
}

func (s *StudentStore) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	var doc studentDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, store.ErrStudentNotFound)
	}
	return doc.toDomain(), nil
}

func (s *StudentStore) find(ctx context.Context, filter bson.M) ([]*domain.Student, error) {
	var docs []studentDoc
	if err := findAll(ctx, s.coll, filter, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Student, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// TeacherStore implements store.TeacherStore on the profesores collection.
type TeacherStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewTeacherStore returns a TeacherStore bound to db.
func NewTeacherStore(db *mongo.Database, logger *slog.Logger) *TeacherStore {
	return &TeacherStore{
		coll:   db.Collection(CollectionTeachers),
		logger: logger.With(slog.String("store", "teacher")),
	}
}

var _ store.TeacherStore = (*TeacherStore)(nil)

// Create implements store.TeacherStore.
func (s *TeacherStore) Create(ctx context.Context, t *domain.Teacher) error {
	doc := teacherDoc{UserDoc: userDocFrom(t.User), Ingreso: t.Ingreso}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error("failed to insert teacher", slog.String("error", err.Error()))
		return mapError(err, store.ErrTeacherNotFound)
	}
	t.ID = insertedID(res)
	return nil
}

// GetByID implements store.TeacherStore.
func (s *TeacherStore) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrTeacherNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// List implements store.TeacherStore.
func (s *TeacherStore) List(ctx context.Context) ([]*domain.Teacher, error) {
	var docs []teacherDoc
	if err := findAll(ctx, s.coll, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Teacher, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByEmail implements store.TeacherStore.
func (s *TeacherStore) FindByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByNameAndEmail implements store.TeacherStore.
func (s *TeacherStore) FindByNameAndEmail(ctx context.Context, nombre, email string) (*domain.Teacher, error) {
	return s.findOne(ctx, bson.M{"nombre": nombre, "email": email})
}

// Update implements store.TeacherStore.
func (s *TeacherStore) Update(ctx context.Context, id string, patch *domain.TeacherPatch) error {
	set := bson.M{}
	userPatchSet(set, &patch.UserPatch)
	if patch.Ingreso != nil {
		set["ingreso"] = *patch.Ingreso
	}
	return updateByID(ctx, s.coll, id, set, store.ErrTeacherNotFound)
}

// Delete implements store.TeacherStore.
func (s *TeacherStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, store.ErrTeacherNotFound)
}

func (s *TeacherStore) findOne(ctx context.Context, filter bson.M) (*domain.Teacher, error) {
	var doc teacherDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, store.ErrTeacherNotFound)
	}
	return doc.toDomain(), nil
}

// AdminStore implements store.AdminStore on the admins collection.
type AdminStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewAdminStore returns an AdminStore bound to db.
func NewAdminStore(db *mongo.Database, logger *slog.Logger) *AdminStore {
	return &AdminStore{
		coll:   db.Collection(CollectionAdmins),
		logger: logger.With(slog.String("store", "admin")),
	}
}

var _ store.AdminStore = (*AdminStore)(nil)

// Create implements store.AdminStore.
func (s *AdminStore) Create(ctx context.Context, a *domain.Admin) error {
	res, err := s.coll.InsertOne(ctx, adminDoc{UserDoc: userDocFrom(a.User)})
	if err != nil {
		s.logger.Error("failed to insert admin", slog.String("error", err.Error()))
		return mapError(err, store.ErrAdminNotFound)
	}
	a.ID = insertedID(res)
	return nil
}

// GetByID implements store.AdminStore.
func (s *AdminStore) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrAdminNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// List implements store.AdminStore.
func (s *AdminStore) List(ctx context.Context) ([]*domain.Admin, error) {
	var docs []adminDoc
	if err := findAll(ctx, s.coll, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Admin, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByEmail implements store.AdminStore.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// Update implements store.AdminStore.
func (s *AdminStore) Update(ctx context.Context, id string, patch *domain.AdminPatch) error {
	set := bson.M{}
	userPatchSet(set, &patch.UserPatch)
	return updateByID(ctx, s.coll, id, set, store.ErrAdminNotFound)
}

// Delete implements store.AdminStore.
func (s *AdminStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, store.ErrAdminNotFound)
}

func (s *AdminStore) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, store.ErrAdminNotFound)
	}
	return doc.toDomain(), nil
}

// findAll decodes every document matching filter, ordered by _id, into out.
func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, out any) error {
	cur, err := coll.Find(ctx, filter, sortByID)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}

// updateByID applies set to the document with the given id. An empty set
// only checks that the document exists.
func updateByID(ctx context.Context, coll *mongo.Collection, id string, set bson.M, notFound error) error {
	oid, ok := parseID(id)
	if !ok {
		return notFound
	}
	if len(set) == 0 {
		return exists(ctx, coll, bson.M{"_id": oid}, notFound)
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return mapError(err, notFound)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	oid, ok := parseID(id)
	if !ok {
		return notFound
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapError(err, notFound)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.M, notFound error) error {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return mapError(err, notFound)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
