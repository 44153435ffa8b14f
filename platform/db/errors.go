package db

import (
	"errors"

	"travelnest_backend/platform/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError converts driver errors into domain errors: a missing document
// becomes NotFound(notFound), a unique index violation becomes
// Conflict(conflict), and anything else is Internal.
func MapError(op string, err error, notFound, conflict string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(notFound).WithOp(op)
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict(conflict).WithOp(op)
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, "database failure", err).WithOp(op)
}

// ObjectID parses a hex ID from a URL or token. Malformed IDs are reported
// as NotFound(notFound) since no document can carry them.
func ObjectID(hex, notFound string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound(notFound)
	}
	return id, nil
}

// ObjectIDs parses many hex IDs, skipping malformed ones.
func ObjectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	seen := make(map[primitive.ObjectID]bool, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
