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

type mongoPropertyRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoPropertyRepository returns a PropertyRepository backed by MongoDB.
func NewMongoPropertyRepository(db *mongo.Database) PropertyRepository {
	return &mongoPropertyRepository{coll: db.Collection(propertiesCollection), now: utcNow}
}

func (r *mongoPropertyRepository) List(ctx context.Context, filter model.PropertyFilter, page model.Page) ([]model.Property, int64, error) {
	defer prometheus.TrackDBOperation("property_list")(time.Now())

	doc := propertyFilterDoc(filter)
	total, err := r.coll.CountDocuments(ctx, doc)
	if err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	cursor, err := r.coll.Find(ctx, doc, pageOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, fmt.Errorf("decode properties: %w", err)
	}
	return properties, total, nil
}

func (r *mongoPropertyRepository) GetByID(ctx context.Context, id string) (*model.Property, error) {
	defer prometheus.TrackDBOperation("property_get")(time.Now())

	var p model.Property
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(msgPropertyNotFound)
		}
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return &p, nil
}

func (r *mongoPropertyRepository) Summaries(ctx context.Context, ids []string) (map[string]model.PropertySummary, error) {
	summaries := make(map[string]model.PropertySummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	defer prometheus.TrackDBOperation("property_summaries")(time.Now())

	projection := bson.M{"title": 1, "price": 1, "address": 1, "displayImage": 1}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("load property summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []model.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode property summaries: %w", err)
	}
	for i := range properties {
		summaries[properties[i].ID] = properties[i].Summary()
	}
	return summaries, nil
}

func (r *mongoPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("property_create")(time.Now())

	now := r.now()
	prepareProperty(p, uuid.NewString(), now)
	if err := p.Validate(now); err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (r *mongoPropertyRepository) Update(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("property_update")(time.Now())

	now := r.now()
	p.Normalize()
	p.UpdatedAt = now
	if err := p.Validate(now); err != nil {
		return err
	}

	// CreatedBy and CreatedAt come from the stored document, never from p.
	set := bson.M{
		"propertyType":     p.PropertyType,
		"title":            p.Title,
		"price":            p.Price,
		"transactionType":  p.TransactionType,
		"area":             p.Area,
		"description":      p.Description,
		"keyFeatures":      p.KeyFeatures,
		"status":           p.Status,
		"displayImage":     p.DisplayImage,
		"additionalImages": p.AdditionalImages,
		"address":          p.Address,
		"updatedAt":        p.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if p.YearBuilt != nil {
		set["yearBuilt"] = *p.YearBuilt
	} else {
		update["$unset"] = bson.M{"yearBuilt": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("update property %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound(msgPropertyNotFound)
	}
	return nil
}

func (r *mongoPropertyRepository) UpdateStatus(ctx context.Context, id string, status model.PropertyStatus) (*model.Property, error) {
	defer prometheus.TrackDBOperation("property_update_status")(time.Now())

	var p model.Property
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": r.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(msgPropertyNotFound)
		}
		return nil, fmt.Errorf("update property status %s: %w", id, err)
	}
	return &p, nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("property_delete")(time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound(msgPropertyNotFound)
	}
	return nil
}

func (r *mongoPropertyRepository) Stats(ctx context.Context, since time.Time) (model.DashboardStats, error) {
	defer prometheus.TrackDBOperation("property_stats")(time.Now())

	var stats model.DashboardStats
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.TotalProperties, bson.M{}},
		{&stats.ActiveProperties, bson.M{"status": model.PropertyActive}},
		{&stats.InactiveProperties, bson.M{"status": model.PropertyInactive}},
		{&stats.PropertiesAdded, bson.M{"createdAt": bson.M{"$gte": since}}},
	}
	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return model.DashboardStats{}, fmt.Errorf("count properties: %w", err)
		}
		*c.dst = n
	}
	return stats, nil
}
