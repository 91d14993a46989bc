// Package mongodb provides a MongoDB-backed implementation of the
// storage.Store interface, matching the document layout the API grew up
// with: one collection per aggregate, accident sub-collections embedded
// in the accident document.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store using MongoDB.
type MongoStore struct {
	client     *mongo.Client
	users      *mongo.Collection
	persons    *mongo.Collection
	insurances *mongo.Collection
	accidents  *mongo.Collection
}

// New connects to MongoDB and prepares the collections and indexes.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:     client,
		users:      db.Collection("users"),
		persons:    db.Collection("persons"),
		insurances: db.Collection("insurances"),
		accidents:  db.Collection("accidents"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	_, err = s.insurances.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerKind", Value: 1}, {Key: "ownerID", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create insurance owner index: %w", err)
	}

	_, err = s.accidents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userID", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create accident user index: %w", err)
	}

	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// CreateUser inserts a new user document.
func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	prepareUser(user)
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(user); err != nil {
		return nil, wrapFindErr(err, "user")
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(user); err != nil {
		return nil, wrapFindErr(err, "user")
	}
	return user, nil
}

// CreatePerson inserts a new person document.
func (s *MongoStore) CreatePerson(ctx context.Context, person *models.Person) error {
	preparePersonID(person)
	if _, err := s.persons.InsertOne(ctx, person); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// GetPerson retrieves a person by ID.
func (s *MongoStore) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	person := &models.Person{}
	if err := s.persons.FindOne(ctx, bson.M{"_id": id}).Decode(person); err != nil {
		return nil, wrapFindErr(err, "person")
	}
	return person, nil
}

// UpdatePerson overwrites an existing person document.
func (s *MongoStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.persons.ReplaceOne(ctx, bson.M{"_id": person.ID}, person)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePerson removes a person by ID.
func (s *MongoStore) DeletePerson(ctx context.Context, id string) error {
	res, err := s.persons.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateInsurance inserts a new insurance document.
func (s *MongoStore) CreateInsurance(ctx context.Context, ins *models.Insurance) error {
	prepareInsuranceID(ins)
	if _, err := s.insurances.InsertOne(ctx, ins); err != nil {
		return fmt.Errorf("failed to create insurance: %w", err)
	}
	return nil
}

// GetInsurance retrieves an insurance document by ID.
func (s *MongoStore) GetInsurance(ctx context.Context, id string) (*models.Insurance, error) {
	ins := &models.Insurance{}
	if err := s.insurances.FindOne(ctx, bson.M{"_id": id}).Decode(ins); err != nil {
		return nil, wrapFindErr(err, "insurance")
	}
	return ins, nil
}

// UpdateInsurance overwrites an existing insurance document.
func (s *MongoStore) UpdateInsurance(ctx context.Context, ins *models.Insurance) error {
	res, err := s.insurances.ReplaceOne(ctx, bson.M{"_id": ins.ID}, ins)
	if err != nil {
		return fmt.Errorf("failed to update insurance: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteInsurance removes an insurance document by ID.
func (s *MongoStore) DeleteInsurance(ctx context.Context, id string) error {
	res, err := s.insurances.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete insurance: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListInsurances returns every insurance document in insertion order.
func (s *MongoStore) ListInsurances(ctx context.Context) ([]*models.Insurance, error) {
	return decodeAll[models.Insurance](ctx, s.insurances, bson.M{}, "insurances")
}

// ListInsurancesByOwner returns the documents owned by the given aggregate.
func (s *MongoStore) ListInsurancesByOwner(ctx context.Context, kind models.OwnerKind, ownerID string) ([]*models.Insurance, error) {
	filter := bson.M{"ownerKind": kind, "ownerID": ownerID}
	return decodeAll[models.Insurance](ctx, s.insurances, filter, "insurances")
}

// DeleteAllInsurances wipes the insurance collection.
func (s *MongoStore) DeleteAllInsurances(ctx context.Context) error {
	if _, err := s.insurances.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete all insurances: %w", err)
	}
	return nil
}

// CreateAccident inserts a new accident document.
func (s *MongoStore) CreateAccident(ctx context.Context, acc *models.Accident) error {
	prepareAccident(acc)
	if _, err := s.accidents.InsertOne(ctx, acc); err != nil {
		return fmt.Errorf("failed to create accident: %w", err)
	}
	return nil
}

// GetAccident retrieves an accident document by ID.
func (s *MongoStore) GetAccident(ctx context.Context, id string) (*models.Accident, error) {
	acc := &models.Accident{}
	if err := s.accidents.FindOne(ctx, bson.M{"_id": id}).Decode(acc); err != nil {
		return nil, wrapFindErr(err, "accident")
	}
	return acc, nil
}

// UpdateAccident overwrites an existing accident document.
func (s *MongoStore) UpdateAccident(ctx context.Context, acc *models.Accident) error {
	res, err := s.accidents.ReplaceOne(ctx, bson.M{"_id": acc.ID}, acc)
	if err != nil {
		return fmt.Errorf("failed to update accident: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteAccident removes an accident document by ID.
func (s *MongoStore) DeleteAccident(ctx context.Context, id string) error {
	res, err := s.accidents.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete accident: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListAccidents returns every accident document in insertion order.
func (s *MongoStore) ListAccidents(ctx context.Context) ([]*models.Accident, error) {
	return decodeAll[models.Accident](ctx, s.accidents, bson.M{}, "accidents")
}

// ListAccidentsByUser returns the documents filed by the given user.
func (s *MongoStore) ListAccidentsByUser(ctx context.Context, userID string) ([]*models.Accident, error) {
	return decodeAll[models.Accident](ctx, s.accidents, bson.M{"userID": userID}, "accidents")
}

func decodeAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, what string) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	defer cursor.Close(ctx)

	var result []*T
	for cursor.Next(ctx) {
		doc := new(T)
		if err := cursor.Decode(doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", what, err)
		}
		result = append(result, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}

	return result, nil
}

func wrapFindErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
