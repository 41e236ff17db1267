package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

type PropertyHandler struct {
	Svc    *application.PropertyService
	Logger *logrus.Logger
}

func NewPropertyHandler(svc *application.PropertyService, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{Svc: svc, Logger: logger}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToPropertyResponse(p), "property created", nil)
}

// ListMine GET /api/properties returns the caller's properties.
func (h *PropertyHandler) ListMine(c *gin.Context) {
	ps, err := h.Svc.ListMine(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToPropertyResponses(ps), "properties", nil)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToPropertyResponse(p), "property", nil)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req dto.UpdatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToPropertyResponse(p), "property updated", nil)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Geocode POST /api/properties/:id/geocode refreshes the coordinates.
func (h *PropertyHandler) Geocode(c *gin.Context) {
	p, err := h.Svc.Geocode(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToPropertyResponse(p), "property geocoded", nil)
}

// CreateAttribute POST /api/attributes (admin)
func (h *PropertyHandler) CreateAttribute(c *gin.Context) {
	var req dto.CreateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.CreateAttribute(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToAttributeResponse(a), "attribute created", nil)
}

func (h *PropertyHandler) ListAttributes(c *gin.Context) {
	as, err := h.Svc.ListAttributes(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToAttributeResponses(as), "attributes", nil)
}

func (h *PropertyHandler) ListAttributeValues(c *gin.Context) {
	vs, err := h.Svc.ListAttributeValues(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToAttributeValueResponses(vs), "attribute values", nil)
}

// SetAttributeValue PUT /api/properties/:id/attributes upserts one value.
func (h *PropertyHandler) SetAttributeValue(c *gin.Context) {
	var req dto.SetAttributeValueRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.Svc.SetAttributeValue(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToAttributeValueResponse(v), "attribute value saved", nil)
}

func (h *PropertyHandler) RemoveAttributeValue(c *gin.Context) {
	if err := h.Svc.RemoveAttributeValue(c.Request.Context(), actor(c), c.Param("id"), c.Param("valueId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *PropertyHandler) ListMedia(c *gin.Context) {
	ms, err := h.Svc.ListMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToMediaResponses(ms), "media", nil)
}

// UploadMedia POST /api/properties/:id/media (multipart field "file")
func (h *PropertyHandler) UploadMedia(c *gin.Context) {
	file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()
	m, err := h.Svc.UploadMedia(c.Request.Context(), actor(c), c.Param("id"), file.name, file.contentType, file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToMediaResponse(m), "media uploaded", nil)
}

func (h *PropertyHandler) DeleteMedia(c *gin.Context) {
	if err := h.Svc.DeleteMedia(c.Request.Context(), actor(c), c.Param("id"), c.Param("mediaId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
