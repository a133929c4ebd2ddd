package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/middleware"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingUsecase usecasecontract.IListingUseCase
}

func NewListingHandler(listingUsecase usecasecontract.IListingUseCase) *ListingHandler {
	return &ListingHandler{listingUsecase: listingUsecase}
}

// ListListings handles GET /listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	criteria, err := parseListingCriteria(c)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	listings, err := h.listingUsecase.ListVisible(c.Request.Context(), criteria, middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToListingResponses(listings, now()))
}

// GetListing handles GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingUsecase.GetVisible(c.Request.Context(), c.Param("id"), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToListingResponse(listing, now()))
}

// CreateListing handles POST /listings. Authenticated callers become the seller.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	listing, err := h.listingUsecase.Create(c.Request.Context(), req.ToInput(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToListingResponse(listing, now()))
}

// UpdateListing handles PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var req dto.UpdateListingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	listing, err := h.listingUsecase.Update(c.Request.Context(), c.Param("id"), req.ToPatch(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToListingResponse(listing, now()))
}

// DeleteListing handles DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	if err := h.listingUsecase.Delete(c.Request.Context(), c.Param("id"), middleware.GetCaller(c)); err != nil {
		HandleUseCaseError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Listing successfully deleted")
}

// ApproveListing handles PUT /listings/:id/approve
func (h *ListingHandler) ApproveListing(c *gin.Context) {
	h.transition(c, h.listingUsecase.Approve)
}

// RejectListing handles PUT /listings/:id/reject
func (h *ListingHandler) RejectListing(c *gin.Context) {
	h.transition(c, h.listingUsecase.Reject)
}

// FeatureListing handles PUT /listings/:id/feature
func (h *ListingHandler) FeatureListing(c *gin.Context) {
	h.transition(c, h.listingUsecase.ToggleFeatured)
}

type listingAction func(ctx context.Context, id string, caller entity.Caller) (*entity.Listing, error)

func (h *ListingHandler) transition(c *gin.Context, action listingAction) {
	listing, err := action(c.Request.Context(), c.Param("id"), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToListingResponse(listing, now()))
}

// ListingStats handles GET /admin/listings/stats
func (h *ListingHandler) ListingStats(c *gin.Context) {
	stats, err := h.listingUsecase.Stats(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}

func parseListingCriteria(c *gin.Context) (usecasecontract.ListingCriteria, error) {
	var criteria usecasecontract.ListingCriteria
	verr := &domainerrors.ValidationError{}

	if v := strings.TrimSpace(c.Query("variety")); v != "" {
		criteria.Variety = &v
	}
	if v := strings.TrimSpace(c.Query("location")); v != "" {
		criteria.Location = &v
	}
	if v := c.Query("status"); v != "" {
		s := entity.ListingStatus(v)
		if !s.Valid() {
			verr.Add("status", "must be one of pending, approved, rejected")
		}
		criteria.Status = &s
	}
	for _, q := range []struct {
		key string
		dst **int
	}{{"minQuantity", &criteria.MinQuantity}, {"maxQuantity", &criteria.MaxQuantity}} {
		if v := c.Query(q.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				verr.Add(q.key, "must be an integer")
				continue
			}
			*q.dst = &n
		}
	}
	if v := c.Query("harvestDateFrom"); v != "" {
		t, err := dto.ParseDate(v)
		if err != nil {
			verr.Add("harvestDateFrom", err.Error())
		} else {
			criteria.HarvestDateFrom = &t
		}
	}
	if v := c.Query("harvestDateTo"); v != "" {
		t, err := dto.ParseDate(v)
		if err != nil {
			verr.Add("harvestDateTo", err.Error())
		} else {
			criteria.HarvestDateTo = &t
		}
	}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			verr.Add("featured", "must be true or false")
		}
		criteria.Featured = featured
	}
	return criteria, verr.OrNil()
}
