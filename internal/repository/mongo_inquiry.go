package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/model"
	"property-service/prometheus"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoInquiryStore[T any, PT inquiryRecord[T]] struct {
	coll     *mongo.Collection
	now      func() time.Time
	name     string
	notFound string
}

// NewMongoInquiryRepository returns the property-scoped inquiry store backed by MongoDB.
func NewMongoInquiryRepository(db *mongo.Database) InquiryRepository {
	return &mongoInquiryStore[model.Inquiry, *model.Inquiry]{
		coll: db.Collection(inquiriesCollection), now: utcNow, name: "inquiry", notFound: msgInquiryNotFound,
	}
}

// NewMongoGeneralInquiryRepository returns the general inquiry store backed by MongoDB.
func NewMongoGeneralInquiryRepository(db *mongo.Database) GeneralInquiryRepository {
	return &mongoInquiryStore[model.GeneralInquiry, *model.GeneralInquiry]{
		coll: db.Collection(generalInquiriesCollection), now: utcNow, name: "general_inquiry", notFound: msgGeneralInquiryNotFound,
	}
}

func (s *mongoInquiryStore[T, PT]) Create(ctx context.Context, record *T) error {
	defer prometheus.TrackDBOperation(s.name + "_create")(time.Now())

	rec := PT(record)
	rec.Prepare(uuid.NewString(), s.now())
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

func (s *mongoInquiryStore[T, PT]) List(ctx context.Context, filter model.InquiryFilter, page model.Page) ([]T, int64, error) {
	defer prometheus.TrackDBOperation(s.name + "_list")(time.Now())

	doc := inquiryFilterDoc(filter)
	total, err := s.coll.CountDocuments(ctx, doc)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.name, err)
	}

	cursor, err := s.coll.Find(ctx, doc, pageOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.name, err)
	}
	defer cursor.Close(ctx)

	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return records, total, nil
}

func (s *mongoInquiryStore[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	defer prometheus.TrackDBOperation(s.name + "_get")(time.Now())

	record := new(T)
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(s.notFound)
		}
		return nil, fmt.Errorf("get %s %s: %w", s.name, id, err)
	}
	return record, nil
}

func (s *mongoInquiryStore[T, PT]) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (*T, error) {
	defer prometheus.TrackDBOperation(s.name + "_update_status")(time.Now())

	record := new(T)
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": s.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(s.notFound)
		}
		return nil, fmt.Errorf("update %s status %s: %w", s.name, id, err)
	}
	return record, nil
}

func (s *mongoInquiryStore[T, PT]) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation(s.name + "_delete")(time.Now())

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", s.name, id, err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound(s.notFound)
	}
	return nil
}

func (s *mongoInquiryStore[T, PT]) Stats(ctx context.Context) (model.InquiryStats, error) {
	defer prometheus.TrackDBOperation(s.name + "_stats")(time.Now())

	var stats model.InquiryStats
	counts := []struct {
		dst    *int64
		status model.InquiryStatus
	}{
		{&stats.TotalInquiries, ""},
		{&stats.NewInquiries, model.InquiryNew},
		{&stats.RespondedInquiries, model.InquiryResponded},
		{&stats.ClosedInquiries, model.InquiryClosed},
	}
	for _, c := range counts {
		n, err := s.coll.CountDocuments(ctx, inquiryFilterDoc(model.InquiryFilter{Status: string(c.status)}))
		if err != nil {
			return model.InquiryStats{}, fmt.Errorf("count %s: %w", s.name, err)
		}
		*c.dst = n
	}
	return stats, nil
}
