package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BrokerRepository struct {
	collection *mongo.Collection
}

var _ contract.IBrokerRepository = (*BrokerRepository)(nil)

func NewBrokerRepository(db *mongo.Database) *BrokerRepository {
	return &BrokerRepository{collection: db.Collection("brokers")}
}

func (r *BrokerRepository) CreateBroker(ctx context.Context, broker *entity.Broker) error {
	_, err := r.collection.InsertOne(ctx, broker)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("broker profile for user %s: %w", broker.UserID, domainerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert broker: %w", err)
	}
	return nil
}

func (r *BrokerRepository) GetBrokerByID(ctx context.Context, id string) (*entity.Broker, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BrokerRepository) GetBrokerByUserID(ctx context.Context, userID string) (*entity.Broker, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *BrokerRepository) findOne(ctx context.Context, filter bson.M) (*entity.Broker, error) {
	var broker entity.Broker
	err := r.collection.FindOne(ctx, filter).Decode(&broker)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &broker, nil
}

func (r *BrokerRepository) FindBrokers(ctx context.Context, filter contract.BrokerFilter) ([]*entity.Broker, error) {
	opts := options.Find().SetSort(brokerSort)
	cursor, err := r.collection.Find(ctx, buildBrokerFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve brokers: %w", err)
	}
	defer cursor.Close(ctx)

	brokers := []*entity.Broker{}
	if err := cursor.All(ctx, &brokers); err != nil {
		return nil, fmt.Errorf("failed to decode brokers: %w", err)
	}
	return brokers, nil
}

func (r *BrokerRepository) UpdateBroker(ctx context.Context, broker *entity.Broker) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": broker.ID}, broker)
	if err != nil {
		return fmt.Errorf("failed to update broker: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BrokerRepository) DeleteBroker(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete broker: %w", err)
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
