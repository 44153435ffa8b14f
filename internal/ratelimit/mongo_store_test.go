package ratelimit

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStoreFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing window", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "travelnest.ratelimits", mtest.FirstBatch))

		rec, err := NewMongoStore(mt.DB).Find(context.Background(), "1.1.1.1", ActionLogin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec != nil {
			t.Fatalf("expected nil record, got %+v", rec)
		}
	})

	mt.Run("live window", func(mt *mtest.T) {
		resetAt := time.Now().Add(time.Minute).UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "travelnest.ratelimits", mtest.FirstBatch, bson.D{
			{Key: "ip", Value: "1.1.1.1"},
			{Key: "action", Value: ActionLogin},
			{Key: "count", Value: int32(4)},
			{Key: "resetAt", Value: primitive.NewDateTimeFromTime(resetAt)},
		}))

		rec, err := NewMongoStore(mt.DB).Find(context.Background(), "1.1.1.1", ActionLogin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec == nil || rec.Count != 4 || !rec.ResetAt.Equal(resetAt) {
			t.Fatalf("unexpected record %+v", rec)
		}
	})

	mt.Run("create upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := NewMongoStore(mt.DB).Create(context.Background(), "1.1.1.1", ActionLogin, time.Now().Add(time.Minute)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
