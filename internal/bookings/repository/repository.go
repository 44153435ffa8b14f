package repository

import (
	"context"
	"time"

	"travelnest_backend/platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	msgBookingNotFound = "Booking not found"
	msgBookingConflict = "Booking already exists"
)

// Repository stores bookings in Mongo.
type Repository struct {
	bookings *mongo.Collection
	now      func() time.Time
}

// New creates a booking repository.
func New(database *mongo.Database) *Repository {
	return &Repository{bookings: database.Collection(db.CollectionBookings), now: time.Now}
}

var _ BookingRepository = (*Repository)(nil)

// Create inserts a pending, unpaid booking.
func (r *Repository) Create(ctx context.Context, params CreateBookingParams) (Booking, error) {
	userID, err := db.ObjectID(params.UserID, "User not found")
	if err != nil {
		return Booking{}, err
	}
	packageID, err := db.ObjectID(params.PackageID, "Package not found")
	if err != nil {
		return Booking{}, err
	}

	now := r.now().UTC()
	booking := Booking{
		User:            userID,
		Package:         packageID,
		StartDate:       params.StartDate.UTC(),
		Travelers:       params.Travelers,
		TotalPrice:      params.TotalPrice,
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		SpecialRequests: params.SpecialRequests,
		ContactEmail:    params.ContactEmail,
		ContactPhone:    params.ContactPhone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	res, err := r.bookings.InsertOne(ctx, booking)
	if err != nil {
		return Booking{}, db.MapError("bookings.Create", err, msgBookingNotFound, msgBookingConflict)
	}
	booking.ID = res.InsertedID.(primitive.ObjectID)
	return booking, nil
}

// GetByID loads a booking by hex ID.
func (r *Repository) GetByID(ctx context.Context, id string) (Booking, error) {
	oid, err := db.ObjectID(id, msgBookingNotFound)
	if err != nil {
		return Booking{}, err
	}
	var booking Booking
	if err := r.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		return Booking{}, db.MapError("bookings.GetByID", err, msgBookingNotFound, msgBookingConflict)
	}
	return booking, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []Booking{}, nil
	}
	return r.find(ctx, "bookings.ListByUser", bson.M{"user": oid}, options.Find().SetSort(newestFirst))
}

// ListAll returns every booking, newest first.
func (r *Repository) ListAll(ctx context.Context, limit int64) ([]Booking, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, "bookings.ListAll", bson.M{}, opts)
}

// Update sets the administrative fields and returns the updated booking.
func (r *Repository) Update(ctx context.Context, params UpdateBookingParams) (Booking, error) {
	oid, err := db.ObjectID(params.ID, msgBookingNotFound)
	if err != nil {
		return Booking{}, err
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	if params.Status != nil {
		set["status"] = *params.Status
	}
	if params.PaymentStatus != nil {
		set["paymentStatus"] = *params.PaymentStatus
	}
	if params.PaymentID != nil {
		set["paymentId"] = *params.PaymentID
	}
	if params.InvoiceID != nil {
		set["invoiceId"] = *params.InvoiceID
	}

	var booking Booking
	err = r.bookings.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		return Booking{}, db.MapError("bookings.Update", err, msgBookingNotFound, msgBookingConflict)
	}
	return booking, nil
}

// Count counts all bookings.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, db.MapError("bookings.Count", err, msgBookingNotFound, msgBookingConflict)
	}
	return n, nil
}

// PaidRevenue sums totalPrice over paid bookings.
func (r *Repository) PaidRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": PaymentPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalPrice"}}}},
	}
	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, db.MapError("bookings.PaidRevenue", err, msgBookingNotFound, msgBookingConflict)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, db.MapError("bookings.PaidRevenue", err, msgBookingNotFound, msgBookingConflict)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func (r *Repository) find(ctx context.Context, op string, filter interface{}, opts *options.FindOptions) ([]Booking, error) {
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, db.MapError(op, err, msgBookingNotFound, msgBookingConflict)
	}
	defer cursor.Close(ctx)

	bookings := make([]Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, db.MapError(op, err, msgBookingNotFound, msgBookingConflict)
	}
	return bookings, nil
}
