package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

type BookmarkHandler struct {
	Svc    *application.BookmarkService
	Logger *logrus.Logger
}

func NewBookmarkHandler(svc *application.BookmarkService, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{Svc: svc, Logger: logger}
}

// Toggle POST /api/bookmarks/toggle {listing_id}
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	var req dto.BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Toggle(c.Request.Context(), actor(c), req.ListingID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToBookmarkResponse(b), "bookmark toggled", nil)
}

// Set PUT /api/bookmarks {listing_id, bookmarked}
func (h *BookmarkHandler) Set(c *gin.Context) {
	var req dto.BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Bookmarked == nil {
		respondError(c, h.Logger, errs.Validation(errs.CodeValidationFailed, "bookmarked is required"))
		return
	}
	b, err := h.Svc.Set(c.Request.Context(), actor(c), req.ListingID, *req.Bookmarked)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToBookmarkResponse(b), "bookmark saved", nil)
}

func (h *BookmarkHandler) List(c *gin.Context) {
	bs, err := h.Svc.ListMine(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToBookmarkResponses(bs), "bookmarks", nil)
}

func (h *BookmarkHandler) Status(c *gin.Context) {
	b, err := h.Svc.Status(c.Request.Context(), actor(c), c.Param("listingId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToBookmarkResponse(b), "bookmark", nil)
}
