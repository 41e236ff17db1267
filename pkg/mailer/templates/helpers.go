package templates

import (
	"strings"
	"time"
)

// Brand carries the company details rendered in every email footer.
type Brand struct {
	AppName        string
	AppURL         string // base of links into the web app; optional
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	PrivacyURL     string
	UnsubscribeURL string
}

// Option pattern
type Option func(*EmailData)

const timeLayout = "02 January 2006, 15:04"

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format(timeLayout)
	}
}
func WithVerifyURL(url string) Option { return func(d *EmailData) { d.VerifyURL = url } }
func WithResetURL(url string) Option  { return func(d *EmailData) { d.ResetURL = url } }
func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		utc := time.Now().Add(dur).UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format(timeLayout)
	}
}

// NewBaseEmailData fills the common fields from brand, then applies opts.
func NewBaseEmailData(b Brand, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           strings.TrimSpace(name),
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		AppName:        b.AppName,

		LogoURL:        b.LogoURL,
		SupportURL:     b.SupportURL,
		PrivacyURL:     b.PrivacyURL,
		UnsubscribeURL: b.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Brand, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, name, email, opts...))
}

func NewVerifyEmailData(b Brand, name, email, verifyURL string, opts ...Option) map[string]any {
	opts = append([]Option{WithVerifyURL(verifyURL)}, opts...)
	return ToMap(NewBaseEmailData(b, VerifyEmail, name, email, opts...))
}

func NewPasswordResetData(b Brand, name, email, resetURL string, opts ...Option) map[string]any {
	opts = append([]Option{WithResetURL(resetURL)}, opts...)
	return ToMap(NewBaseEmailData(b, PasswordReset, name, email, opts...))
}

func NewProposalActivatedData(b Brand, ownerName, ownerEmail, agentName, address, commission string, opts ...Option) map[string]any {
	d := NewBaseEmailData(b, ProposalActivated, ownerName, ownerEmail, opts...)
	d.AgentName = agentName
	d.PropertyAddress = address
	d.CommissionRate = commission
	return ToMap(d)
}

func NewNotificationData(b Brand, name, email, title, body string, opts ...Option) map[string]any {
	d := NewBaseEmailData(b, Notification, name, email, opts...)
	d.Title = title
	d.Body = body
	return ToMap(d)
}
