package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

type AuthOptions struct {
	Brand            mailtpl.Brand
	ResetPasswordURL string
	VerifyEmailURL   string
	PasswordResetTTL time.Duration
	EmailVerifyTTL   time.Duration
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type AuthService struct {
	users    repository.UserRepository
	jwt      *helpers.JWTManager
	sessions cache.SessionStore
	tokens   cache.TokenStore
	mail     Mailer
	index    UserIndexer
	opts     AuthOptions
	log      *logrus.Logger
}

// NewAuthService wires authentication. mail and index may be nil.
func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, sessions cache.SessionStore, tokens cache.TokenStore, mail Mailer, index UserIndexer, opts AuthOptions, log *logrus.Logger) *AuthService {
	if opts.PasswordResetTTL <= 0 {
		opts.PasswordResetTTL = 30 * time.Minute
	}
	if opts.EmailVerifyTTL <= 0 {
		opts.EmailVerifyTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		jwt:      jwt,
		sessions: sessions,
		tokens:   tokens,
		mail:     mail,
		index:    index,
		opts:     opts,
		log:      helpers.OrNop(log),
	}
}

var errInvalidCredentials = errs.Unauthorized(errs.CodeInvalidCredentials, "invalid email or password")

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, TokenPair, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, repoErr(err)
	}
	if taken {
		return nil, TokenPair{}, emailTaken()
	}
	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, TokenPair{}, errs.Internal("hash password", err)
	}
	u := entity.NewUser(email, hash, req.FirstName, req.LastName)
	u.Phone = req.Phone
	if _, err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, TokenPair{}, emailTaken()
		}
		return nil, TokenPair{}, repoErr(err)
	}
	s.indexUser(ctx, u)
	s.sendAsync(ctx, mailer.EmailJob{
		To:       u.Email.String(),
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.opts.Brand, u.FullName(), u.Email.String(), mailtpl.WithTime(time.Now())),
	})
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func emailTaken() error {
	return errs.New(errs.KindConflict, errs.CodeEmailAlreadyExists, "email is already registered")
}

// Authenticate checks credentials without issuing tokens. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, rawEmail, password string) (*entity.User, error) {
	email, err := valueobject.NewEmail(rawEmail)
	if err != nil {
		return nil, errInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, repoErr(err)
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, errInvalidCredentials
	}
	if !u.IsActive() {
		return nil, errs.New(errs.KindForbidden, errs.CodeAccountDisabled, "account is "+string(u.Status))
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens starts a fresh session, replacing any previous one for the user.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u, sid)
	if err != nil {
		return TokenPair{}, err
	}
	sess := cache.Session{
		UserID:    u.ID,
		SessionID: sid,
		Role:      string(u.Role),
		Email:     u.Email.String(),
		Name:      u.FullName(),
		AvatarURL: u.AvatarURL,
	}
	if err := s.sessions.Start(ctx, sess); err != nil {
		return TokenPair{}, errs.Internal("start session", err)
	}
	return pair, nil
}

func (s *AuthService) sign(u *entity.User, sid string) (TokenPair, error) {
	access, aexp, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role), sid)
	if err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, errs.Internal("generate access token", err)
	}
	refresh, rexp, err := s.jwt.GenerateRefreshToken(u.ID, string(u.Role), sid)
	if err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, errs.Internal("generate refresh token", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id; a refresh token is usable once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	invalid := errs.Unauthorized(errs.CodeInvalidToken, "refresh token is invalid or expired")
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, invalid
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, TokenPair{}, invalid
	}
	if err != nil {
		return nil, TokenPair{}, repoErr(err)
	}
	if !u.IsActive() {
		return nil, TokenPair{}, errs.New(errs.KindForbidden, errs.CodeAccountDisabled, "account is "+string(u.Status))
	}
	sid := uuid.NewString()
	ok, err := s.sessions.Rotate(ctx, u.ID, claims.SessionID, sid)
	if err != nil {
		return nil, TokenPair{}, errs.Internal("rotate session", err)
	}
	if !ok {
		return nil, TokenPair{}, invalid
	}
	pair, err := s.sign(u, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		return errs.Internal("revoke session", err)
	}
	return nil
}

// RequestPasswordReset always succeeds for unknown addresses so that
// registered emails cannot be probed.
func (s *AuthService) RequestPasswordReset(ctx context.Context, rawEmail string) error {
	email, err := valueobject.NewEmail(rawEmail)
	if err != nil {
		return err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.WithField("email", email.String()).Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return repoErr(err)
	}
	if !u.IsActive() {
		return nil
	}
	token, err := s.putToken(ctx, helpers.KeyPasswordReset, u.ID, s.opts.PasswordResetTTL)
	if err != nil {
		return err
	}
	s.sendAsync(ctx, mailer.EmailJob{
		To:       u.Email.String(),
		Template: mailtpl.PasswordReset,
		Data: mailtpl.NewPasswordResetData(s.opts.Brand, u.FullName(), u.Email.String(),
			withToken(s.opts.ResetPasswordURL, token), mailtpl.WithExpiresIn(s.opts.PasswordResetTTL)),
	})
	return nil
}

// ResetPassword consumes the token, sets the password and ends the current session.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.takeToken(ctx, helpers.KeyPasswordReset(token), "reset token is invalid or expired")
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return errs.Internal("hash password", err)
	}
	u.PasswordHash = hash
	if _, err := s.users.Save(ctx, u); err != nil {
		return fromRepo(err, errs.UserNotFound, u.ID)
	}
	if err := s.sessions.Revoke(ctx, u.ID); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("revoke session after password reset failed")
	}
	return nil
}

func (s *AuthService) RequestEmailVerification(ctx context.Context, userID string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fromRepo(err, errs.UserNotFound, userID)
	}
	if u.IsVerified {
		return errs.Conflict("email is already verified")
	}
	token, err := s.putToken(ctx, helpers.KeyEmailVerify, u.ID, s.opts.EmailVerifyTTL)
	if err != nil {
		return err
	}
	s.sendAsync(ctx, mailer.EmailJob{
		To:       u.Email.String(),
		Template: mailtpl.VerifyEmail,
		Data: mailtpl.NewVerifyEmailData(s.opts.Brand, u.FullName(), u.Email.String(),
			withToken(s.opts.VerifyEmailURL, token), mailtpl.WithExpiresIn(s.opts.EmailVerifyTTL)),
	})
	return nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.takeToken(ctx, helpers.KeyEmailVerify(token), "verification token is invalid or expired")
	if err != nil {
		return nil, err
	}
	u.MarkVerified()
	if _, err := s.users.Save(ctx, u); err != nil {
		return nil, fromRepo(err, errs.UserNotFound, u.ID)
	}
	s.indexUser(ctx, u)
	return u, nil
}

func (s *AuthService) putToken(ctx context.Context, key func(string) string, userID string, ttl time.Duration) (string, error) {
	token, err := helpers.GenToken(32)
	if err != nil {
		return "", errs.Internal("generate token", err)
	}
	if err := s.tokens.Put(ctx, key(token), userID, ttl); err != nil {
		return "", errs.Internal("store token", err)
	}
	return token, nil
}

func (s *AuthService) takeToken(ctx context.Context, key, msg string) (*entity.User, error) {
	userID, ok, err := s.tokens.Take(ctx, key)
	if err != nil {
		return nil, errs.Internal("read token", err)
	}
	if !ok {
		return nil, errs.Unauthorized(errs.CodeInvalidToken, msg)
	}
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.Unauthorized(errs.CodeInvalidToken, msg)
	}
	if err != nil {
		return nil, repoErr(err)
	}
	return u, nil
}

func (s *AuthService) sendAsync(ctx context.Context, job mailer.EmailJob) {
	if s.mail == nil {
		return
	}
	s.mail.SendAsync(ctx, job)
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, u); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}

// withToken appends ?token= to base, keeping any query already present.
func withToken(base, token string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
