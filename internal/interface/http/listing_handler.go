package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

type ListingHandler struct {
	Svc    *application.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

type listingQueryFunc func(context.Context, application.Actor, dto.ListingQuery) ([]*entity.Listing, int64, repository.Page, error)

func (h *ListingHandler) page(c *gin.Context, query listingQueryFunc) {
	var q dto.ListingQuery
	if !bindQuery(c, &q) {
		return
	}
	ls, total, p, err := query(c.Request.Context(), actor(c), q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	items := make([]dto.ListingSummaryResponse, 0, len(ls))
	for _, l := range ls {
		items = append(items, mapper.ToListingSummary(l))
	}
	response.Success(c, http.StatusOK, dto.NewPage(items, p.Page, p.Limit, total), "listings", nil)
}

// List GET /api/listings?type=&status=&city=&min_price=&max_price=&page=&limit=
func (h *ListingHandler) List(c *gin.Context) { h.page(c, h.Svc.List) }

// Search GET /api/listings/search?q=... full text with repository fallback.
func (h *ListingHandler) Search(c *gin.Context) { h.page(c, h.Svc.Search) }

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToListingResponse(l), "listing", nil)
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToListingResponse(l), "listing created", nil)
}

func (h *ListingHandler) Update(c *gin.Context) {
	var req dto.UpdateListingRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToListingResponse(l), "listing updated", nil)
}

type listingTransition func(context.Context, application.Actor, string) (*entity.Listing, error)

// transition answers POST /api/listings/:id/{publish,pending,close,archive}.
func (h *ListingHandler) transition(fn listingTransition, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := fn(c.Request.Context(), actor(c), c.Param("id"))
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		response.Success(c, http.StatusOK, mapper.ToListingResponse(l), msg, nil)
	}
}

func (h *ListingHandler) Publish() gin.HandlerFunc {
	return h.transition(h.Svc.Publish, "listing published")
}

func (h *ListingHandler) MarkPending() gin.HandlerFunc {
	return h.transition(h.Svc.MarkPending, "listing marked pending")
}

func (h *ListingHandler) Close() gin.HandlerFunc {
	return h.transition(h.Svc.Close, "listing closed")
}

func (h *ListingHandler) Archive() gin.HandlerFunc {
	return h.transition(h.Svc.Archive, "listing archived")
}

func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
