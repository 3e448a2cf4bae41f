// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
)

// Collection names match the original deployment.
const (
	usersCollection   = "users"
	ratingsCollection = "user_anime_ratings"
	animeCollection   = "anime_data"

	mongoBackend = "mongo"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  []byte             `bson:"password"`
	History   []Turn             `bson:"history"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *userDocument) toUser() *User {
	history := d.History
	if history == nil {
		history = []Turn{}
	}
	return &User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		History:      history,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoStore is the MongoDB Store backend.
type MongoStore struct {
	client  *mongo.Client
	users   *mongo.Collection
	ratings *mongo.Collection
	anime   *mongo.Collection
	timeout time.Duration
}

// OpenMongoStore connects to uri, verifies the connection and ensures
// the lookup indexes exist.
func OpenMongoStore(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:  client,
		users:   db.Collection(usersCollection),
		ratings: db.Collection(ratingsCollection),
		anime:   db.Collection(animeCollection),
		timeout: timeout,
	}
	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	if _, err := s.ratings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "anime_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create ratings index: %w", err)
	}
	return nil
}

// ratingUserFilter matches a user id in the string form written here and in
// the numeric form of rows imported from the original dataset. When it
// returns an $in clause the caller must set user_id on insert itself.
func ratingUserFilter(userID string) (interface{}, bool) {
	n, err := strconv.ParseInt(userID, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != userID {
		return userID, false
	}
	return bson.M{"$in": bson.A{userID, n}}, true
}

func observeMongo(operation string, start time.Time, err error) {
	metrics.RecordDBQuery(mongoBackend, operation, time.Since(start), err)
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// CreateUser inserts a user document with an empty history.
func (s *MongoStore) CreateUser(ctx context.Context, email string, passwordHash []byte) (id string, err error) {
	start := time.Now()
	defer func() { observeMongo("user_create", start, err) }()

	res, err := s.users.InsertOne(ctx, userDocument{
		Email:     email,
		Password:  passwordHash,
		History:   []Turn{},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// UserByEmail returns the earliest user document with email.
func (s *MongoStore) UserByEmail(ctx context.Context, email string) (user *User, err error) {
	start := time.Now()
	defer func() { observeMongo("user_by_email", start, err) }()

	var doc userDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	if err := s.users.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toUser(), nil
}

// User loads a user document by hex ObjectID.
func (s *MongoStore) User(ctx context.Context, id string) (user *User, err error) {
	start := time.Now()
	defer func() { observeMongo("user_get", start, err) }()

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toUser(), nil
}

// DeleteUser removes the user document including its history.
func (s *MongoStore) DeleteUser(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observeMongo("user_delete", start, err) }()

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendTurn pushes turn onto the user's history array.
func (s *MongoStore) AppendTurn(ctx context.Context, userID string, turn Turn) (err error) {
	start := time.Now()
	defer func() { observeMongo("history_append", start, err) }()

	return s.updateUser(ctx, userID, bson.M{"$push": bson.M{"history": turn}})
}

// History returns the user's turns in insertion order.
func (s *MongoStore) History(ctx context.Context, userID string) ([]Turn, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.History, nil
}

// ClearHistory sets the history array to empty in a single update.
func (s *MongoStore) ClearHistory(ctx context.Context, userID string) (err error) {
	start := time.Now()
	defer func() { observeMongo("history_clear", start, err) }()

	return s.updateUser(ctx, userID, bson.M{"$set": bson.M{"history": []Turn{}}})
}

func (s *MongoStore) updateUser(ctx context.Context, id string, update bson.M) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ratings returns every rating document. Numeric fields are accepted in any
// BSON numeric type since the collection is often bulk-imported.
func (s *MongoStore) Ratings(ctx context.Context) (ratings []Rating, err error) {
	start := time.Now()
	defer func() { observeMongo("ratings_list", start, err) }()

	cur, err := s.ratings.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	defer cur.Close(ctx)

	ratings = []Rating{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		animeID, okID := toInt(doc["anime_id"])
		value, okValue := toFloat(doc["rating"])
		if !okID || !okValue || doc["user_id"] == nil {
			continue
		}
		ratings = append(ratings, Rating{UserID: idString(doc["user_id"]), AnimeID: animeID, Rating: value})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// UpsertRating sets the rating of (user_id, anime_id), inserting when absent.
func (s *MongoStore) UpsertRating(ctx context.Context, r Rating) (err error) {
	start := time.Now()
	defer func() { observeMongo("rating_upsert", start, err) }()

	userFilter, legacy := ratingUserFilter(r.UserID)
	update := bson.M{"$set": bson.M{"rating": r.Rating}}
	if legacy {
		update["$setOnInsert"] = bson.M{"user_id": r.UserID}
	}
	_, err = s.ratings.UpdateOne(ctx,
		bson.M{"user_id": userFilter, "anime_id": r.AnimeID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// AnimeTitles returns the anime_data table.
func (s *MongoStore) AnimeTitles(ctx context.Context) (titles []AnimeTitle, err error) {
	start := time.Now()
	defer func() { observeMongo("titles_list", start, err) }()

	cur, err := s.anime.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"anime_id": 1, "title": 1}))
	if err != nil {
		return nil, fmt.Errorf("find anime titles: %w", err)
	}
	defer cur.Close(ctx)

	titles = []AnimeTitle{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode anime title: %w", err)
		}
		animeID, ok := toInt(doc["anime_id"])
		title, okTitle := doc["title"].(string)
		if !ok || !okTitle {
			continue
		}
		titles = append(titles, AnimeTitle{AnimeID: animeID, Title: title})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate anime titles: %w", err)
	}
	return titles, nil
}

// UpsertAnimeTitle sets the title of t.AnimeID, inserting when absent.
func (s *MongoStore) UpsertAnimeTitle(ctx context.Context, t AnimeTitle) (err error) {
	start := time.Now()
	defer func() { observeMongo("title_upsert", start, err) }()

	_, err = s.anime.UpdateOne(ctx,
		bson.M{"anime_id": t.AnimeID},
		bson.M{"$set": bson.M{"title": t.Title}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert anime title: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// idString renders a user_id stored as string, number or ObjectID.
func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		if n, ok := toInt(v); ok {
			return fmt.Sprint(n)
		}
		return fmt.Sprint(v)
	}
}
