package mongodb

import (
	"testing"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func ptr[T any](v T) *T { return &v }

func TestBuildListingFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildListingFilter(contract.ListingFilter{}))
}

func TestBuildListingFilterAllCriteria(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	f := contract.ListingFilter{
		Status:          ptr(entity.ListingStatusApproved),
		Variety:         ptr("Alphonso"),
		Location:        ptr("Ratnagiri (MH)"),
		MinQuantity:     ptr(100),
		MaxQuantity:     ptr(500),
		HarvestDateFrom: &from,
		HarvestDateTo:   &to,
		FeaturedOnly:    true,
	}

	got := buildListingFilter(f)
	assert.Equal(t, entity.ListingStatusApproved, got["status"])
	assert.Equal(t, "Alphonso", got["variety"])
	assert.Equal(t, bson.M{"$regex": `Ratnagiri \(MH\)`, "$options": "i"}, got["location"])
	assert.Equal(t, bson.M{"$gte": 100, "$lte": 500}, got["quantity"])
	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, got["harvest_date"])
	assert.Equal(t, true, got["featured"])
}

func TestBuildListingFilterOpenRanges(t *testing.T) {
	got := buildListingFilter(contract.ListingFilter{MinQuantity: ptr(10), Variety: ptr("")})
	assert.Equal(t, bson.M{"quantity": bson.M{"$gte": 10}}, got)
}

func TestBuildListingPipelineStages(t *testing.T) {
	p := buildListingPipeline(contract.ListingFilter{Limit: 100})
	require.Len(t, p, 6)
	stages := make([]string, 0, len(p))
	for _, stage := range p {
		stages = append(stages, stage[0].Key)
	}
	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$sort", "$limit", "$project"}, stages)
	assert.Equal(t, listingSort, p[3][0].Value)
	assert.Equal(t, int64(100), p[4][0].Value)

	lookup := p[1][0].Value.(bson.M)
	assert.Equal(t, "broker_id", lookup["localField"])
	assert.Equal(t, "user_id", lookup["foreignField"])

	assert.Len(t, buildListingPipeline(contract.ListingFilter{}), 5)
}

func TestBuildBrokerFilter(t *testing.T) {
	got := buildBrokerFilter(contract.BrokerFilter{Region: "krishna", Specialty: "Alphonso", VerifiedOnly: true, PremiumOnly: true})
	assert.Equal(t, bson.M{
		"regions":     bson.M{"$regex": "krishna", "$options": "i"},
		"specialties": bson.M{"$regex": "Alphonso", "$options": "i"},
		"is_verified": true,
		"is_premium":  true,
	}, got)
	assert.Equal(t, "is_premium", brokerSort[0].Key)
}
