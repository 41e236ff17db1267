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

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// RegisterDevice POST /api/devices {token, platform}
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var req dto.RegisterDeviceRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.RegisterDevice(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": d.ID, "platform": d.Platform}, "device registered", nil)
}

// UnregisterDevice DELETE /api/devices {token}
func (h *NotificationHandler) UnregisterDevice(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.UnregisterDevice(c.Request.Context(), actor(c), req.Token); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *NotificationHandler) List(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	p := q.page()
	ns, total, err := h.Svc.List(c.Request.Context(), actor(c), p)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, dto.NewPage(mapper.ToNotificationResponses(ns), p.Page, p.Limit, total), "notifications", nil)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.Svc.UnreadCount(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": n}, "unread count", nil)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.Svc.MarkRead(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToNotificationResponse(n), "notification read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Send POST /api/notifications/send (admin)
func (h *NotificationHandler) Send(c *gin.Context) {
	var req dto.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.Svc.Send(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, mapper.ToNotificationResponse(n), "notification sent", nil)
}
