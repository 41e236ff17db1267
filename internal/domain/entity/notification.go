package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

type NotificationType string

const (
	NotificationGeneral  NotificationType = "GENERAL"
	NotificationProposal NotificationType = "PROPOSAL"
	NotificationListing  NotificationType = "LISTING"
	NotificationAccount  NotificationType = "ACCOUNT"
)

// Notification is an in-app message, optionally also pushed to devices.
type Notification struct {
	ID                string
	UserID            string
	Type              NotificationType
	Title             string
	Body              string
	Read              bool
	ProviderMessageID string
	DeliveryError     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (n *Notification) MarkRead() { n.Read = true }

// RecordDelivery keeps the first provider id and accumulates failures.
func (n *Notification) RecordDelivery(messageID, deliveryErr string) {
	if messageID != "" && n.ProviderMessageID == "" {
		n.ProviderMessageID = messageID
	}
	if deliveryErr != "" {
		if n.DeliveryError != "" {
			n.DeliveryError += "; "
		}
		n.DeliveryError += deliveryErr
	}
}

type DevicePlatform string

const (
	PlatformAndroid DevicePlatform = "ANDROID"
	PlatformIOS     DevicePlatform = "IOS"
	PlatformWeb     DevicePlatform = "WEB"
)

func ParseDevicePlatform(s string) (DevicePlatform, error) {
	p := DevicePlatform(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return p, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown device platform: "+s)
}

// DeviceToken is a push registration for one of a user's devices.
type DeviceToken struct {
	ID        string
	UserID    string
	Token     string
	Platform  DevicePlatform
	CreatedAt time.Time
	UpdatedAt time.Time
}
