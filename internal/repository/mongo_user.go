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

type mongoUserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUserRepository returns a UserRepository backed by MongoDB.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(usersCollection), now: utcNow}
}

func (r *mongoUserRepository) Create(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("user_create")(time.Now())

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = model.NormalizeEmail(u.Email)
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict(msgEmailTaken)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": model.NormalizeEmail(email)})
}

func (r *mongoUserRepository) Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	summaries := make(map[string]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	defer prometheus.TrackDBOperation("user_summaries")(time.Now())

	// never load password hashes for a projection
	projection := bson.M{"name": 1, "email": 1}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("load user summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode user summaries: %w", err)
	}
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_get")(time.Now())

	var u model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("user_update")(time.Now())

	u.Email = model.NormalizeEmail(u.Email)
	u.UpdatedAt = r.now()

	set := bson.M{
		"name":      u.Name,
		"email":     u.Email,
		"password":  u.Password,
		"role":      u.Role,
		"updatedAt": u.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if u.ProfileImage != nil {
		set["profileImage"] = u.ProfileImage
	} else {
		update["$unset"] = bson.M{"profileImage": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict(msgEmailTaken)
		}
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound(msgUserNotFound)
	}
	return nil
}
