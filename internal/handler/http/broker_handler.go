package http

import (
	"net/http"
	"strconv"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/middleware"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

type BrokerHandler struct {
	brokerUsecase usecasecontract.IBrokerUseCase
}

func NewBrokerHandler(brokerUsecase usecasecontract.IBrokerUseCase) *BrokerHandler {
	return &BrokerHandler{brokerUsecase: brokerUsecase}
}

// ListBrokers handles GET /brokers
func (h *BrokerHandler) ListBrokers(c *gin.Context) {
	criteria, err := parseBrokerCriteria(c)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	views, err := h.brokerUsecase.List(c.Request.Context(), criteria)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrokerResponses(views, now()))
}

// parseBrokerCriteria reads the directory filters. An absent flag means false.
func parseBrokerCriteria(c *gin.Context) (usecasecontract.BrokerCriteria, error) {
	criteria := usecasecontract.BrokerCriteria{
		Region:    c.Query("region"),
		Specialty: c.Query("specialty"),
	}
	verr := &domainerrors.ValidationError{}
	for _, q := range []struct {
		key string
		dst *bool
	}{{"verified", &criteria.Verified}, {"premium", &criteria.Premium}} {
		if v := c.Query(q.key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				verr.Add(q.key, "must be true or false")
				continue
			}
			*q.dst = b
		}
	}
	return criteria, verr.OrNil()
}

// GetBroker handles GET /brokers/:id
func (h *BrokerHandler) GetBroker(c *gin.Context) {
	view, err := h.brokerUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrokerResponse(view.Broker, view.User, now()))
}

// CreateBroker handles POST /brokers
func (h *BrokerHandler) CreateBroker(c *gin.Context) {
	var req dto.CreateBrokerRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	broker, err := h.brokerUsecase.CreateProfile(c.Request.Context(), middleware.GetCaller(c), req.ToInput())
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToBrokerResponse(broker, nil, now()))
}

// UpdateBroker handles PUT /brokers/:id
func (h *BrokerHandler) UpdateBroker(c *gin.Context) {
	var req dto.UpdateBrokerRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	broker, err := h.brokerUsecase.UpdateProfile(c.Request.Context(), c.Param("id"), req.ToPatch(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToBrokerResponse(broker, nil, now()))
}

// DeleteBroker handles DELETE /brokers/:id
func (h *BrokerHandler) DeleteBroker(c *gin.Context) {
	if err := h.brokerUsecase.DeleteProfile(c.Request.Context(), c.Param("id"), middleware.GetCaller(c)); err != nil {
		HandleUseCaseError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Broker profile successfully deleted")
}

// VerifyBroker handles PUT /brokers/:id/verify
func (h *BrokerHandler) VerifyBroker(c *gin.Context) {
	broker, err := h.brokerUsecase.VerifyBroker(c.Request.Context(), c.Param("id"), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	message := "Broker unverified successfully"
	if broker.IsVerified {
		message = "Broker verified successfully"
	}
	SuccessHandler(c, http.StatusOK, dto.BrokerActionResponse{Message: message, Broker: dto.ToBrokerResponse(broker, nil, now())})
}

// RateBroker handles POST /brokers/:id/ratings
func (h *BrokerHandler) RateBroker(c *gin.Context) {
	var req dto.RatingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	broker, err := h.brokerUsecase.AddOrUpdateRating(c.Request.Context(), c.Param("id"), middleware.GetCaller(c), req.Rating, req.Comment)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.BrokerActionResponse{Message: "Rating added successfully", Broker: dto.ToBrokerResponse(broker, nil, now())})
}
