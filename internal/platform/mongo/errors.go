package mongo

import (
	"errors"
	"fmt"

	"github.com/gymdesk/gym-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// mapError translates driver errors into store errors. notFound is returned
// for mongo.ErrNoDocuments so callers get the entity-specific sentinel.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}
