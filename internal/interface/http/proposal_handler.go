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

type ProposalHandler struct {
	Svc    *application.ProposalService
	Logger *logrus.Logger
}

func NewProposalHandler(svc *application.ProposalService, logger *logrus.Logger) *ProposalHandler {
	return &ProposalHandler{Svc: svc, Logger: logger}
}

func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToProposalResponse(p), "proposal created", nil)
}

func (h *ProposalHandler) ListMine(c *gin.Context) {
	ps, err := h.Svc.ListMine(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponses(ps), "proposals", nil)
}

// ListForProperty GET /api/properties/:id/proposals (owner or admin)
func (h *ProposalHandler) ListForProperty(c *gin.Context) {
	ps, err := h.Svc.ListForProperty(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponses(ps), "proposals", nil)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponse(p), "proposal", nil)
}

func (h *ProposalHandler) Update(c *gin.Context) {
	var req dto.UpdateProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponse(p), "proposal updated", nil)
}

func (h *ProposalHandler) Activate(c *gin.Context) {
	p, err := h.Svc.Activate(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponse(p), "proposal activated", nil)
}

func (h *ProposalHandler) Archive(c *gin.Context) {
	p, err := h.Svc.Archive(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToProposalResponse(p), "proposal archived", nil)
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
