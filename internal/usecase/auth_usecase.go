package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"hireflow/internal/notification"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/pkg/validate"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrEmailTaken           = errors.New("email already registered")
	ErrEmailNotFound        = errors.New("email not registered")
	ErrInvalidOTP           = errors.New("invalid or expired otp")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrOTPDeliveryFailed    = errors.New("could not deliver otp")
	errPasswordHashMismatch = bcrypt.ErrMismatchedHashAndPassword
)

const (
	otpTTL       = 10 * time.Minute
	otpKeyPrefix = "otp:"

	minPasswordLen = 8
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type ResetPasswordInput struct {
	Email       string
	OTP         string
	NewPassword string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (repository.User, TokenPair, error)
	Login(ctx context.Context, in LoginInput) (repository.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

type Auth struct {
	users    repository.UserRepository
	tokens   jwt.Service
	otps     OTPStore
	notifier Notifier
	logger   *zap.Logger
}

func NewAuth(users repository.UserRepository, tokens jwt.Service, otps OTPStore, notifier Notifier, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{users: users, tokens: tokens, otps: otps, notifier: notifier, logger: logger}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (repository.User, TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = repository.RoleApplicant
	}

	if in.Username == "" || in.Password == "" {
		return repository.User{}, TokenPair{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if !validate.Email(in.Email) {
		return repository.User{}, TokenPair{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return repository.User{}, TokenPair{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if in.Role != repository.RoleAdmin && in.Role != repository.RoleApplicant {
		return repository.User{}, TokenPair{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	taken, err := u.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return repository.User{}, TokenPair{}, ErrInternal
	}
	if taken {
		return repository.User{}, TokenPair{}, ErrUsernameTaken
	}

	taken, err = u.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return repository.User{}, TokenPair{}, ErrInternal
	}
	if taken {
		return repository.User{}, TokenPair{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, TokenPair{}, ErrInternal
	}

	user := repository.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		u.logger.Error("create user failed", zap.Error(err))
		return repository.User{}, TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(user)
	if err != nil {
		return repository.User{}, TokenPair{}, ErrInternal
	}

	user.PasswordHash = ""
	return user, pair, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (repository.User, TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return repository.User{}, TokenPair{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := u.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return repository.User{}, TokenPair{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, errPasswordHashMismatch) {
			return repository.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return repository.User{}, TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(user)
	if err != nil {
		return repository.User{}, TokenPair{}, ErrInternal
	}

	user.PasswordHash = ""
	return user, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := u.tokens.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.tokens.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	// Refresh claims carry no role, so the user is reloaded. This also
	// invalidates tokens of deleted accounts.
	user, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(user)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validate.Email(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if _, err := u.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrEmailNotFound
		}
		return ErrInternal
	}

	code, err := generateOTP()
	if err != nil {
		return ErrInternal
	}

	if err := u.otps.Set(ctx, otpKeyPrefix+email, code, otpTTL); err != nil {
		u.logger.Error("store otp failed", zap.Error(err))
		return ErrInternal
	}

	// OTP mail is not queued for retry via an idempotency key: a resend
	// request must always produce a fresh send.
	if err := u.notifier.Dispatch(ctx, notification.NewOTP(email, code), ""); err != nil {
		u.logger.Error("otp delivery failed", zap.String("email", email), zap.Error(err))
		return ErrOTPDeliveryFailed
	}
	return nil
}

func (u *Auth) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)
	if !validate.Email(in.Email) || in.OTP == "" {
		return fmt.Errorf("%w: email and otp are required", ErrInvalidInput)
	}
	if len(in.NewPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	stored, found, err := u.otps.Get(ctx, otpKeyPrefix+in.Email)
	if err != nil {
		return ErrInternal
	}
	if !found || stored != in.OTP {
		return ErrInvalidOTP
	}

	user, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidOTP
		}
		return ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	if err := u.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return ErrInternal
	}

	// Single use: a consumed OTP cannot reset the password twice.
	if err := u.otps.Delete(ctx, otpKeyPrefix+in.Email); err != nil {
		u.logger.Warn("delete consumed otp failed", zap.Error(err))
	}
	return nil
}

func (u *Auth) issueTokens(user repository.User) (TokenPair, error) {
	access, err := u.tokens.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := u.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
