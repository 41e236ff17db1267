package application

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/search"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/storage"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type UserService struct {
	users    repository.UserRepository
	sessions cache.SessionStore
	media    storage.Store
	index    UserIndexer
	log      *logrus.Logger
}

// NewUserService wires profile and admin operations. media and index may be nil.
func NewUserService(users repository.UserRepository, sessions cache.SessionStore, media storage.Store, index UserIndexer, log *logrus.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, media: media, index: index, log: helpers.OrNop(log)}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fromRepo(err, errs.UserNotFound, userID)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	return s.save(ctx, u)
}

// UploadAvatar stores the image under avatars/<user>/ and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*entity.User, error) {
	if s.media == nil {
		return nil, errs.StorageFailed("upload", errNotConfigured("object storage"))
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	obj, err := s.media.Upload(ctx, "avatars", userID, filename, contentType, r)
	if err != nil {
		return nil, err
	}
	u.AvatarURL = obj.URL
	return s.save(ctx, u)
}

func (s *UserService) List(ctx context.Context, p repository.Page) ([]*entity.User, int64, error) {
	users, total, err := s.users.List(ctx, p.Normalize())
	if err != nil {
		return nil, 0, repoErr(err)
	}
	return users, total, nil
}

// ChangeRole revokes the target's session so the next token carries the new role.
func (s *UserService) ChangeRole(ctx context.Context, actor Actor, userID, rawRole string) (*entity.User, error) {
	role, err := entity.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}
	if actor.UserID == userID && role != entity.RoleAdmin {
		return nil, errs.Conflict("admins cannot demote themselves")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == role {
		return u, nil
	}
	if err := u.ChangeRole(role); err != nil {
		return nil, err
	}
	if u, err = s.save(ctx, u); err != nil {
		return nil, err
	}
	s.revoke(ctx, u.ID)
	return u, nil
}

func (s *UserService) ChangeStatus(ctx context.Context, actor Actor, userID, rawStatus string) (*entity.User, error) {
	status, err := entity.ParseUserStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if actor.UserID == userID {
		return nil, errs.Conflict("admins cannot change their own status")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch status {
	case entity.UserStatusSuspended:
		err = u.Suspend()
	case entity.UserStatusActive:
		err = u.Reactivate()
	default:
		err = errs.Validation(errs.CodeValidationFailed, "use DELETE to remove a user")
	}
	if err != nil {
		return nil, err
	}
	if u, err = s.save(ctx, u); err != nil {
		return nil, err
	}
	if !u.IsActive() {
		s.revoke(ctx, u.ID)
	}
	return u, nil
}

// Delete is a soft delete: the row stays with status DELETED.
func (s *UserService) Delete(ctx context.Context, actor Actor, userID string) error {
	if actor.UserID == userID {
		return errs.Conflict("admins cannot delete themselves")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	u.SoftDelete()
	if _, err := s.users.Save(ctx, u); err != nil {
		return fromRepo(err, errs.UserNotFound, userID)
	}
	s.revoke(ctx, u.ID)
	if s.index != nil {
		if err := s.index.Delete(ctx, u.ID); err != nil {
			s.log.WithError(err).WithField("user_id", u.ID).Warn("es delete failed")
		}
	}
	return nil
}

// Search queries the users index; without one it returns no hits.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]search.UserDoc, error) {
	if s.index == nil || strings.TrimSpace(q) == "" {
		return []search.UserDoc{}, nil
	}
	return s.index.Search(ctx, q, size)
}

func (s *UserService) save(ctx context.Context, u *entity.User) (*entity.User, error) {
	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, fromRepo(err, errs.UserNotFound, u.ID)
	}
	if s.index != nil {
		if err := s.index.Index(ctx, saved); err != nil {
			s.log.WithError(err).WithField("user_id", saved.ID).Warn("es index failed")
		}
	}
	return saved, nil
}

func (s *UserService) revoke(ctx context.Context, userID string) {
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("revoke session failed")
	}
}
