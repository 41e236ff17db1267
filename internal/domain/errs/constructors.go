package errs

import "fmt"

func NotFound(resource, id string) *Error {
	return New(KindNotFound, CodeResourceNotFound, fmt.Sprintf("%s not found with id: %s", resource, id))
}

func notFound(code Code, resource, id string) *Error {
	return New(KindNotFound, code, fmt.Sprintf("%s not found with id: %s", resource, id))
}

func UserNotFound(id string) *Error         { return notFound(CodeUserNotFound, "user", id) }
func ListingNotFound(id string) *Error      { return notFound(CodeListingNotFound, "listing", id) }
func PropertyNotFound(id string) *Error     { return notFound(CodePropertyNotFound, "property", id) }
func ProposalNotFound(id string) *Error     { return notFound(CodeProposalNotFound, "agent proposal", id) }
func AttributeNotFound(id string) *Error    { return notFound(CodeAttributeNotFound, "property attribute", id) }
func MediaNotFound(id string) *Error        { return notFound(CodeMediaNotFound, "property media", id) }
func NotificationNotFound(id string) *Error { return notFound(CodeNotificationNotFound, "notification", id) }
func BookmarkNotFound(id string) *Error     { return notFound(CodeBookmarkNotFound, "bookmark", id) }

func Conflict(msg string) *Error {
	return New(KindConflict, CodeBusinessConflict, msg)
}

func Validation(code Code, msg string) *Error {
	if code == "" {
		code = CodeValidationFailed
	}
	return New(KindValidation, code, msg)
}

func InvalidTransition(entity, from, to string) *Error {
	return New(KindValidation, CodeInvalidStatusTransition,
		fmt.Sprintf("%s cannot transition from %s to %s", entity, from, to))
}

func Unauthorized(code Code, msg string) *Error {
	return New(KindUnauthorized, code, msg)
}

func Forbidden(msg string) *Error {
	return New(KindForbidden, CodeForbidden, msg)
}

func Internal(msg string, cause error) *Error {
	return Wrap(KindInternal, CodeInternal, msg, cause)
}

func External(code Code, msg string, cause error) *Error {
	return Wrap(KindExternal, code, msg, cause)
}

// Google Maps failure modes.

func MapsQuotaExceeded(cause error) *Error {
	return External(CodeMapsQuotaExceeded, "google maps quota exceeded", cause)
}

func MapsRateLimited(cause error) *Error {
	return External(CodeMapsRateLimited, "google maps rate limit reached", cause)
}

func MapsInvalidCredentials(cause error) *Error {
	return External(CodeMapsInvalidCredentials, "google maps rejected the api key", cause)
}

func MapsNetworkError(cause error) *Error {
	return External(CodeMapsNetworkError, "google maps is unreachable", cause)
}

func MapsGeocodeFailed(address string, cause error) *Error {
	return External(CodeMapsGeocodeFailed, fmt.Sprintf("failed to geocode address %q", address), cause)
}

// Other collaborators.

func MailSendFailed(to string, cause error) *Error {
	return External(CodeMailSendFailed, "failed to send email to "+to, cause)
}

func PushSendFailed(token string, cause error) *Error {
	return External(CodePushSendFailed, "failed to deliver push notification to device "+shorten(token), cause)
}

func StorageFailed(op string, cause error) *Error {
	return External(CodeStorageFailed, "object storage "+op+" failed", cause)
}

func SearchFailed(op string, cause error) *Error {
	return External(CodeSearchFailed, "search "+op+" failed", cause)
}

func shorten(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12] + "..."
}
