package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gymdesk/gym-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollectionStudents = "alumnos"
	CollectionTeachers = "profesores"
	CollectionAdmins   = "admins"
	CollectionClasses  = "clases"
	CollectionRoutines = "rutinas"
)

// Backend is a connected MongoDB database.
type Backend struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

var _ store.Backend = (*Backend)(nil)

// Open connects to uri, verifies the connection and ensures indexes on dbName.
func Open(ctx context.Context, uri, dbName string, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	b := &Backend{
		client: client,
		db:     client.Database(dbName),
		logger: logger.With(slog.String("component", "mongo")),
	}
	if err := b.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return b, nil
}

// EnsureIndexes creates the unique email indexes on the user collections and
// the lookup indexes used by cascades.
func (b *Backend) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		CollectionStudents: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "nombre", Value: 1}, {Key: "dni", Value: 1}}},
		},
		CollectionTeachers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CollectionAdmins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		CollectionClasses: {
			{Keys: bson.D{{Key: "emailProfesor", Value: 1}}},
			{Keys: bson.D{{Key: "alumnosInscriptos", Value: 1}}},
		},
		CollectionRoutines: {
			{Keys: bson.D{{Key: "nombreAlumno", Value: 1}, {Key: "dniAlumno", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := b.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	b.logger.Debug("mongo indexes ensured")
	return nil
}

// Stores returns the entity stores bound to this database.
func (b *Backend) Stores() store.Stores {
	return store.Stores{
		Students: NewStudentStore(b.db, b.logger),
		Teachers: NewTeacherStore(b.db, b.logger),
		Admins:   NewAdminStore(b.db, b.logger),
		Classes:  NewClassStore(b.db, b.logger),
		Routines: NewRoutineStore(b.db, b.logger),
	}
}

// Ping checks connectivity with the primary.
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// Database exposes the underlying database for maintenance tasks and tests.
func (b *Backend) Database() *mongo.Database {
	return b.db
}

// parseID converts a hex identifier. Identifiers that do not parse can never
// match a document, so callers report them as not found.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func parseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

var sortByID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
