package dto

import (
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
)

// PriceRangeDTO is the asking price band per kg.
type PriceRangeDTO struct {
	Min float64 `json:"min" binding:"gte=0"`
	Max float64 `json:"max" binding:"gte=0"`
}

func (p *PriceRangeDTO) toEntity() *entity.PriceRange {
	if p == nil {
		return nil
	}
	return &entity.PriceRange{Min: p.Min, Max: p.Max}
}

// CreateListingRequest is the body of POST /listings.
type CreateListingRequest struct {
	Variety       string         `json:"variety" binding:"required"`
	Quantity      int            `json:"quantity" binding:"required,min=1"`
	Location      string         `json:"location" binding:"required"`
	HarvestDate   *Date          `json:"harvestDate" binding:"required"`
	SellerName    string         `json:"sellerName" binding:"required"`
	SellerPhone   string         `json:"sellerPhone" binding:"required,phone10"`
	Description   string         `json:"description"`
	Images        []string       `json:"images" binding:"max=5"`
	QualityGrade  *string        `json:"qualityGrade" binding:"omitempty,quality_grade"`
	FarmingMethod *string        `json:"farmingMethod" binding:"omitempty,farming_method"`
	PriceRange    *PriceRangeDTO `json:"priceRange"`
}

// ToInput converts the request into the use case input.
func (r CreateListingRequest) ToInput() usecasecontract.CreateListingInput {
	in := usecasecontract.CreateListingInput{
		Variety:     r.Variety,
		Quantity:    r.Quantity,
		Location:    r.Location,
		SellerName:  r.SellerName,
		SellerPhone: r.SellerPhone,
		Description: r.Description,
		Images:      r.Images,
		PriceRange:  r.PriceRange.toEntity(),
	}
	if r.HarvestDate != nil {
		in.HarvestDate = r.HarvestDate.Time
	}
	if r.QualityGrade != nil {
		g := entity.QualityGrade(*r.QualityGrade)
		in.QualityGrade = &g
	}
	if r.FarmingMethod != nil {
		m := entity.FarmingMethod(*r.FarmingMethod)
		in.FarmingMethod = &m
	}
	return in
}

// UpdateListingRequest is the body of PUT /listings/:id. Absent fields are left untouched.
type UpdateListingRequest struct {
	Variety       *string        `json:"variety"`
	Quantity      *int           `json:"quantity"`
	Location      *string        `json:"location"`
	HarvestDate   *Date          `json:"harvestDate"`
	SellerName    *string        `json:"sellerName"`
	SellerPhone   *string        `json:"sellerPhone"`
	Description   *string        `json:"description"`
	Images        *[]string      `json:"images"`
	QualityGrade  *string        `json:"qualityGrade" binding:"omitempty,quality_grade"`
	FarmingMethod *string        `json:"farmingMethod" binding:"omitempty,farming_method"`
	PriceRange    *PriceRangeDTO `json:"priceRange"`
	Status        *string        `json:"status" binding:"omitempty,listing_status"`
	Featured      *bool          `json:"featured"`
	BrokerID      *string        `json:"brokerId"`
}

// ToPatch converts the request into a use case patch.
func (r UpdateListingRequest) ToPatch() usecasecontract.ListingPatch {
	p := usecasecontract.ListingPatch{
		Variety:     r.Variety,
		Quantity:    r.Quantity,
		Location:    r.Location,
		HarvestDate: r.HarvestDate.Ptr(),
		SellerName:  r.SellerName,
		SellerPhone: r.SellerPhone,
		Description: r.Description,
		Images:      r.Images,
		PriceRange:  r.PriceRange.toEntity(),
		Featured:    r.Featured,
		BrokerID:    r.BrokerID,
	}
	if r.QualityGrade != nil {
		g := entity.QualityGrade(*r.QualityGrade)
		p.QualityGrade = &g
	}
	if r.FarmingMethod != nil {
		m := entity.FarmingMethod(*r.FarmingMethod)
		p.FarmingMethod = &m
	}
	if r.Status != nil {
		s := entity.ListingStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// ListingResponse is the DTO for a listing, including derived values.
type ListingResponse struct {
	ID               string         `json:"id"`
	Variety          string         `json:"variety"`
	Quantity         int            `json:"quantity"`
	Location         string         `json:"location"`
	HarvestDate      string         `json:"harvestDate"`
	SellerName       string         `json:"sellerName"`
	SellerPhone      string         `json:"sellerPhone"`
	Description      string         `json:"description,omitempty"`
	Images           []string       `json:"images"`
	Status           string         `json:"status"`
	Featured         bool           `json:"featured"`
	SellerID         *string        `json:"sellerId,omitempty"`
	BrokerID         *string        `json:"brokerId,omitempty"`
	QualityGrade     *string        `json:"qualityGrade,omitempty"`
	FarmingMethod    *string        `json:"farmingMethod,omitempty"`
	PriceRange       *PriceRangeDTO `json:"priceRange,omitempty"`
	ListingAgeDays   int            `json:"listingAgeDays"`
	DaysUntilHarvest int            `json:"daysUntilHarvest"`
	CreatedAt        string         `json:"createdAt"`
	UpdatedAt        string         `json:"updatedAt"`
}

// ToListingResponse converts an entity.Listing, computing derived values at now.
func ToListingResponse(l *entity.Listing, now time.Time) ListingResponse {
	resp := ListingResponse{
		ID:               l.ID,
		Variety:          l.Variety,
		Quantity:         l.Quantity,
		Location:         l.Location,
		HarvestDate:      l.HarvestDate.Format(time.RFC3339),
		SellerName:       l.SellerName,
		SellerPhone:      l.SellerPhone,
		Description:      l.Description,
		Images:           l.Images,
		Status:           string(l.Status),
		Featured:         l.Featured,
		SellerID:         l.SellerID,
		BrokerID:         l.BrokerID,
		ListingAgeDays:   l.ListingAgeDays(now),
		DaysUntilHarvest: l.DaysUntilHarvest(now),
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        l.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if l.QualityGrade != nil {
		g := string(*l.QualityGrade)
		resp.QualityGrade = &g
	}
	if l.FarmingMethod != nil {
		m := string(*l.FarmingMethod)
		resp.FarmingMethod = &m
	}
	if l.PriceRange != nil {
		resp.PriceRange = &PriceRangeDTO{Min: l.PriceRange.Min, Max: l.PriceRange.Max}
	}
	return resp
}

// ToListingResponses converts a slice, never returning nil.
func ToListingResponses(listings []*entity.Listing, now time.Time) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToListingResponse(l, now))
	}
	return out
}
