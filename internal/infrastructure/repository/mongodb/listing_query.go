package mongodb

import (
	"regexp"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// containsInsensitive matches values containing s, ignoring case. s is matched literally.
func containsInsensitive(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// buildListingFilter translates the effective filter into a $match document.
func buildListingFilter(f contract.ListingFilter) bson.M {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = *f.Status
	}
	if f.Variety != nil && *f.Variety != "" {
		filter["variety"] = *f.Variety
	}
	if f.Location != nil && *f.Location != "" {
		filter["location"] = containsInsensitive(*f.Location)
	}
	if f.MinQuantity != nil || f.MaxQuantity != nil {
		q := bson.M{}
		if f.MinQuantity != nil {
			q["$gte"] = *f.MinQuantity
		}
		if f.MaxQuantity != nil {
			q["$lte"] = *f.MaxQuantity
		}
		filter["quantity"] = q
	}
	if f.HarvestDateFrom != nil || f.HarvestDateTo != nil {
		h := bson.M{}
		if f.HarvestDateFrom != nil {
			h["$gte"] = *f.HarvestDateFrom
		}
		if f.HarvestDateTo != nil {
			h["$lte"] = *f.HarvestDateTo
		}
		filter["harvest_date"] = h
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	return filter
}

// listingSort orders featured first, then by the assigned broker's badges, then newest.
var listingSort = bson.D{
	{Key: "featured", Value: -1},
	{Key: "_broker_verified", Value: -1},
	{Key: "_broker_premium", Value: -1},
	{Key: "created_at", Value: -1},
}

// buildListingPipeline joins each listing with its broker profile so the broker flags can be sorted on.
func buildListingPipeline(f contract.ListingFilter) mongo.Pipeline {
	brokerFlag := func(field string) bson.M {
		return bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$_broker." + field, 0}}, false}}
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildListingFilter(f)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "brokers",
			"localField":   "broker_id",
			"foreignField": "user_id",
			"as":           "_broker",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"_broker_verified": brokerFlag("is_verified"),
			"_broker_premium":  brokerFlag("is_premium"),
		}}},
		bson.D{{Key: "$sort", Value: listingSort}},
	}
	if f.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(f.Limit)}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_broker":          0,
		"_broker_verified": 0,
		"_broker_premium":  0,
	}}})
	return pipeline
}

// buildBrokerFilter translates the directory criteria into a find filter.
func buildBrokerFilter(f contract.BrokerFilter) bson.M {
	filter := bson.M{}
	if f.Region != "" {
		filter["regions"] = containsInsensitive(f.Region)
	}
	if f.Specialty != "" {
		filter["specialties"] = containsInsensitive(f.Specialty)
	}
	if f.VerifiedOnly {
		filter["is_verified"] = true
	}
	if f.PremiumOnly {
		filter["is_premium"] = true
	}
	return filter
}

var brokerSort = bson.D{
	{Key: "is_premium", Value: -1},
	{Key: "is_verified", Value: -1},
	{Key: "created_at", Value: -1},
}
