package application

import (
	"errors"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

// Actor is the authenticated caller. The zero value is an anonymous visitor.
type Actor struct {
	UserID string
	Role   entity.Role
}

func (a Actor) IsAnonymous() bool { return a.UserID == "" }

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanManage reports whether the actor owns the resource or is an admin.
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || (!a.IsAnonymous() && a.UserID == ownerID)
}

// CanView reports whether the listing is visible to the actor. Listings that
// are not public are limited to their owner and admins.
func (a Actor) CanView(l *entity.Listing) bool {
	return l.IsPublic() || a.IsAdmin() || (!a.IsAnonymous() && l.OwnedBy(a.UserID))
}

// fromRepo turns repository sentinels into domain errors. Domain errors pass through.
func fromRepo(err error, notFound func(string) *errs.Error, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(id)
	}
	var de *errs.Error
	if errors.As(err, &de) {
		return err
	}
	return errs.Internal("repository operation failed", err)
}

func repoErr(err error) error {
	if err == nil {
		return nil
	}
	var de *errs.Error
	if errors.As(err, &de) {
		return err
	}
	return errs.Internal("repository operation failed", err)
}

type notConfiguredError string

func (e notConfiguredError) Error() string { return string(e) + " is not configured" }

func errNotConfigured(what string) error { return notConfiguredError(what) }
