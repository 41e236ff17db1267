package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

const maxUploadBytes = 10 << 20

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), actor(c).UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserResponse(u), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), actor(c).UserID, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserResponse(u), "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()
	u, err := h.Svc.UploadAvatar(c.Request.Context(), actor(c).UserID, file.name, file.contentType, file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserResponse(u), "avatar updated", nil)
}

// List GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	p := q.page()
	us, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, dto.NewPage(mapper.ToUserResponses(us), p.Page, p.Limit, total), "users", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	var q struct {
		Q    string `form:"q" binding:"max=200"`
		Size int    `form:"size" binding:"omitempty,min=1,max=100"`
	}
	if !bindQuery(c, &q) {
		return
	}
	docs, err := h.Svc.Search(c.Request.Context(), strings.TrimSpace(q.Q), q.Size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserSearchHits(docs), "users", nil)
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.ChangeRole(c.Request.Context(), actor(c), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserResponse(u), "role updated", nil)
}

func (h *UserHandler) ChangeStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.ChangeStatus(c.Request.Context(), actor(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, mapper.ToUserResponse(u), "status updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// errMissingFile is answered when the multipart "file" field is absent.
var errMissingFile = errs.Validation(errs.CodeValidationFailed, `multipart field "file" is required`)
