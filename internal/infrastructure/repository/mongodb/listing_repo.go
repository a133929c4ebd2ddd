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
)

type ListingRepository struct {
	collection *mongo.Collection
}

var _ contract.IListingRepository = (*ListingRepository)(nil)

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing *entity.Listing) error {
	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	var listing entity.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) FindListings(ctx context.Context, filter contract.ListingFilter) ([]*entity.Listing, error) {
	cursor, err := r.collection.Aggregate(ctx, buildListingPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*entity.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, listing *entity.Listing) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": listing.ID}, listing)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) CountByStatus(ctx context.Context) (map[entity.ListingStatus]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status entity.ListingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode listing counts: %w", err)
	}
	counts := make(map[entity.ListingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
