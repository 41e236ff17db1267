// Package container builds the application graph once at startup and hands
// the finished services to the router and the binaries.
package container

import (
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/config"
	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/maps"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/postgres"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/push"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/search"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/storage"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

// Repos is the persistence layer, backed by Postgres or by process memory.
type Repos struct {
	Users           repository.UserRepository
	Properties      repository.PropertyRepository
	Attributes      repository.PropertyAttributeRepository
	AttributeValues repository.PropertyAttributeValueRepository
	Media           repository.PropertyMediaRepository
	Listings        repository.ListingRepository
	Proposals       repository.AgentProposalRepository
	Bookmarks       repository.BookmarkRepository
	Notifications   repository.NotificationRepository
	Devices         repository.DeviceTokenRepository
}

// MemoryRepos exposes a memory.Store through the repository interfaces.
func MemoryRepos(s *memory.Store) Repos {
	return Repos{
		Users:           s.Users,
		Properties:      s.Properties,
		Attributes:      s.Attributes,
		AttributeValues: s.AttributeValues,
		Media:           s.Media,
		Listings:        s.Listings,
		Proposals:       s.Proposals,
		Bookmarks:       s.Bookmarks,
		Notifications:   s.Notifications,
		Devices:         s.Devices,
	}
}

func postgresRepos(s *postgres.Store) Repos {
	return Repos{
		Users:           s.Users,
		Properties:      s.Properties,
		Attributes:      s.Attributes,
		AttributeValues: s.AttributeValues,
		Media:           s.Media,
		Listings:        s.Listings,
		Proposals:       s.Proposals,
		Bookmarks:       s.Bookmarks,
		Notifications:   s.Notifications,
		Devices:         s.Devices,
	}
}

// Check probes one dependency for /health.
type Check func(ctx context.Context) error

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// nil when STORE_DRIVER=memory
	Pool  *pgxpool.Pool
	Redis *redis.Client
	ES    *elasticsearch.Client
	GCS   *gcs.Client

	JWT      *helpers.JWTManager
	Cookies  *helpers.CookieManager
	Sessions cache.SessionStore
	Tokens   cache.TokenStore
	Repos    Repos
	Mail     *mailer.Service

	Auth          *application.AuthService
	Users         *application.UserService
	Properties    *application.PropertyService
	Listings      *application.ListingService
	Proposals     *application.ProposalService
	Bookmarks     *application.BookmarkService
	Notifications *application.NotificationService

	Checks map[string]Check

	closers []func()
}

// Build connects the configured backends and wires every service. On error
// whatever was already opened is closed before returning.
func Build(ctx context.Context, cfg *config.Config, log *logrus.Logger) (c *Container, err error) {
	c = &Container{
		Config:  cfg,
		Logger:  log,
		JWT:     helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		Cookies: helpers.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure),
		Checks:  map[string]Check{},
	}
	defer func() {
		if err != nil {
			c.Close()
			c = nil
		}
	}()

	if cfg.UseMemoryStore() {
		log.Warn("STORE_DRIVER=memory; data is lost on restart")
		c.buildLocal()
	} else if err = c.connect(ctx); err != nil {
		return c, err
	}

	if err = c.wire(ctx); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Container) onClose(fn func()) { c.closers = append(c.closers, fn) }

// Close releases connections in reverse order of opening.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// buildLocal runs without any external service.
func (c *Container) buildLocal() {
	c.Repos = MemoryRepos(memory.NewStore())
	c.Sessions = cache.NewMemorySessionStore(c.Config.SessionTTL)
	c.Tokens = cache.NewMemoryTokenStore()
}

func (c *Container) connect(ctx context.Context) error {
	cfg := c.Config

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool
	c.onClose(pool.Close)
	c.Repos = postgresRepos(postgres.NewStore(pool))
	c.Checks["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	c.Redis = rdb
	c.onClose(func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	c.Sessions = cache.NewRedisSessionStore(rdb, cfg.SessionTTL, c.Logger)
	c.Tokens = cache.NewRedisTokenStore(rdb)
	c.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			c.Logger.WithError(err).Warn("elasticsearch unavailable; search falls back to the database")
		} else {
			c.ES = es
		}
	}

	if cfg.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs client: %w", err)
		}
		c.GCS = client
		c.onClose(func() { _ = client.Close() })
	}
	return nil
}

// Brand collects the email branding from cfg.
func Brand(cfg *config.Config) mailtpl.Brand {
	return mailtpl.Brand{
		AppName:        cfg.AppName,
		AppURL:         cfg.AppURL,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
}

// NewMailService builds the mail pipeline shared by the API and the email worker.
// withQueue publishes to RabbitMQ when it is reachable; the worker passes false.
func NewMailService(cfg *config.Config, brand mailtpl.Brand, withQueue bool, log *logrus.Logger) (*mailer.Service, func()) {
	var sender mailer.Sender
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else if cfg.MailSendEnabled {
		log.Warn("mailgun not configured; emails are dropped")
	}

	var pub mailer.Publisher
	closeFn := func() {}
	if withQueue && cfg.MailSendEnabled && cfg.RabbitMQURL != "" && cfg.RabbitMQEmailQueue != "" {
		p, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable; async email is sent in-process")
		} else {
			pub = p
			closeFn = p.Close
		}
	}

	loc, err := time.LoadLocation(cfg.MailTimezone)
	if err != nil {
		log.WithError(err).Warnf("unknown MAIL_TIMEZONE %q, using UTC", cfg.MailTimezone)
		loc = time.UTC
	}
	svc := mailer.NewService(sender, pub, mailer.Options{
		Enabled:  cfg.MailSendEnabled,
		Brand:    brand,
		Location: loc,
	}, log)
	return svc, closeFn
}

func (c *Container) wire(ctx context.Context) error {
	cfg, log := c.Config, c.Logger
	brand := Brand(cfg)

	mail, closeMail := NewMailService(cfg, brand, !cfg.UseMemoryStore(), log)
	c.Mail = mail
	c.onClose(closeMail)

	var userIndex application.UserIndexer
	var listingIndex application.ListingIndexer
	if c.ES != nil {
		ui := search.NewUserIndex(c.ES, cfg.ESUsersIndex, log)
		li := search.NewListingIndex(c.ES, cfg.ESListingsIndex, log)
		if err := ui.EnsureIndex(ctx); err != nil {
			log.WithError(err).Warn("users index unavailable; user search disabled")
		} else {
			userIndex = ui
		}
		if err := li.EnsureIndex(ctx); err != nil {
			log.WithError(err).Warn("listings index unavailable; search falls back to the database")
		} else {
			listingIndex = li
		}
	}

	var media storage.Store
	if c.GCS != nil {
		media = storage.NewGCSStore(c.GCS, cfg.GCSBucket, log)
	} else {
		media = storage.NewMemoryStore("/media")
	}

	var geocoder application.Geocoder
	if cfg.MapsEnabled() {
		var geoCache redis.Cmdable
		if c.Redis != nil {
			geoCache = c.Redis
		}
		g, err := maps.NewGeocoder(cfg.GoogleMapsAPIKey, cfg.GeocodeRateLimit, geoCache, cfg.GeocodeCacheTTL, log)
		if err != nil {
			return fmt.Errorf("init geocoder: %w", err)
		}
		geocoder = g
	}

	var sender push.Sender = push.NewLogSender(log)
	if cfg.FCMEnabled {
		fcm, err := push.NewFCMSender(ctx, cfg.FCMProjectID, cfg.FCMCredentialsJSON, log)
		if err != nil {
			return fmt.Errorf("init fcm: %w", err)
		}
		sender = fcm
	}

	r := c.Repos
	c.Auth = application.NewAuthService(r.Users, c.JWT, c.Sessions, c.Tokens, mail, userIndex, application.AuthOptions{
		Brand:            brand,
		ResetPasswordURL: cfg.ResetPasswordURL,
		VerifyEmailURL:   cfg.VerifyEmailURL,
		PasswordResetTTL: cfg.PasswordResetTTL,
		EmailVerifyTTL:   cfg.EmailVerifyTTL,
	}, log)
	c.Users = application.NewUserService(r.Users, c.Sessions, media, userIndex, log)
	c.Properties = application.NewPropertyService(application.PropertyRepos{
		Properties:      r.Properties,
		Attributes:      r.Attributes,
		AttributeValues: r.AttributeValues,
		Media:           r.Media,
		Listings:        r.Listings,
	}, geocoder, media, listingIndex, log)
	c.Listings = application.NewListingService(r.Listings, r.Properties, r.Bookmarks, listingIndex, log)
	c.Bookmarks = application.NewBookmarkService(r.Bookmarks, r.Listings)
	c.Notifications = application.NewNotificationService(r.Notifications, r.Devices, r.Users, sender, mail, application.NotificationOptions{
		Async: cfg.PushAsync,
		Brand: brand,
	}, log)
	c.Proposals = application.NewProposalService(r.Proposals, r.Properties, r.Users, c.Notifications, mail, brand, log)
	return nil
}
