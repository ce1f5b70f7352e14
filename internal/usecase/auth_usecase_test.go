package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireflow/internal/notification"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(users ...repository.User) (*Auth, *fakeUserRepo, *fakeOTPStore, *fakeNotifier) {
	repo := newFakeUserRepo(users...)
	otps := newFakeOTPStore()
	notifier := newFakeNotifier()
	svc := jwt.NewHMACService("access", "refresh", 15*time.Minute, 24*time.Hour)
	return NewAuth(repo, svc, otps, notifier, nil), repo, otps, notifier
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestRegister(t *testing.T) {
	uc, repo, _, _ := newAuthFixture()

	user, pair, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Role != repository.RoleApplicant {
		t.Errorf("role = %q, want default %q", user.Role, repository.RoleApplicant)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("missing tokens")
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d users, want 1", len(repo.created))
	}
	stored := repo.created[0]
	if stored.PasswordHash == "" || stored.PasswordHash == "supersecret" {
		t.Error("password not hashed before storage")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing username", RegisterInput{Email: "a@b.co", Password: "supersecret"}, ErrInvalidInput},
		{"bad email", RegisterInput{Username: "a", Email: "foo@bar", Password: "supersecret"}, ErrInvalidInput},
		{"short password", RegisterInput{Username: "a", Email: "a@b.co", Password: "short"}, ErrInvalidInput},
		{"unknown role", RegisterInput{Username: "a", Email: "a@b.co", Password: "supersecret", Role: "root"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _ := newAuthFixture()
			if _, _, err := uc.Register(context.Background(), tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	existing := repository.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Role:     repository.RoleApplicant,
	}
	uc, _, _, _ := newAuthFixture(existing)

	_, _, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "new@example.com", Password: "supersecret",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("error = %v, want %v", err, ErrUsernameTaken)
	}

	_, _, err = uc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "alice@example.com", Password: "supersecret",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("error = %v, want %v", err, ErrEmailTaken)
	}
}

func TestLogin(t *testing.T) {
	existing := repository.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "supersecret"),
		Role:         repository.RoleAdmin,
	}
	uc, _, _, _ := newAuthFixture(existing)

	user, pair, err := uc.Login(context.Background(), LoginInput{Username: "alice", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != existing.ID {
		t.Errorf("user ID = %v, want %v", user.ID, existing.ID)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}
	if pair.AccessToken == "" {
		t.Error("missing access token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	existing := repository.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hashOf(t, "supersecret"),
	}
	uc, _, _, _ := newAuthFixture(existing)

	if _, _, err := uc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, _, err := uc.Login(context.Background(), LoginInput{Username: "ghost", Password: "supersecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestRefresh(t *testing.T) {
	existing := repository.User{
		ID:       uuid.New(),
		Username: "alice",
		Role:     repository.RoleApplicant,
	}
	uc, _, _, _ := newAuthFixture(existing)

	svc := jwt.NewHMACService("access", "refresh", 15*time.Minute, 24*time.Hour)
	refresh, err := svc.GenerateRefreshToken(existing.ID)
	if err != nil {
		t.Fatal(err)
	}

	pair, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("missing tokens")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	existing := repository.User{ID: uuid.New(), Username: "alice"}
	uc, _, _, _ := newAuthFixture(existing)

	svc := jwt.NewHMACService("access", "refresh", 15*time.Minute, 24*time.Hour)
	access, err := svc.GenerateAccessToken(existing.ID, "alice", repository.RoleApplicant)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("Refresh() error = %v, want %v", err, ErrInvalidRefreshToken)
	}
}

func TestForgotPasswordStoresAndSendsOTP(t *testing.T) {
	existing := repository.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	uc, _, otps, notifier := newAuthFixture(existing)

	if err := uc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}

	code, ok := otps.values["otp:alice@example.com"]
	if !ok {
		t.Fatal("OTP not stored")
	}
	if len(code) != 6 {
		t.Errorf("OTP length = %d, want 6", len(code))
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("dispatched %d messages, want 1", len(notifier.messages))
	}
	if notifier.messages[0].msg.Kind != notification.KindOTP {
		t.Errorf("kind = %q, want %q", notifier.messages[0].msg.Kind, notification.KindOTP)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	if err := uc.ForgotPassword(context.Background(), "ghost@example.com"); !errors.Is(err, ErrEmailNotFound) {
		t.Errorf("ForgotPassword() error = %v, want %v", err, ErrEmailNotFound)
	}
}

func TestResetPassword(t *testing.T) {
	existing := repository.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "oldpassword"),
	}
	uc, repo, otps, _ := newAuthFixture(existing)
	otps.values["otp:alice@example.com"] = "123456"

	err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:       "alice@example.com",
		OTP:         "123456",
		NewPassword: "newsecret123",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	hash, ok := repo.updatedPassword[existing.ID]
	if !ok {
		t.Fatal("password not updated")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret123")) != nil {
		t.Error("new password does not verify against stored hash")
	}

	// Consumed OTP is gone; replay fails.
	if _, ok := otps.values["otp:alice@example.com"]; ok {
		t.Error("OTP not deleted after use")
	}
	err = uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email: "alice@example.com", OTP: "123456", NewPassword: "anothersecret",
	})
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("replay error = %v, want %v", err, ErrInvalidOTP)
	}
}

func TestResetPasswordWrongOTP(t *testing.T) {
	existing := repository.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	uc, _, otps, _ := newAuthFixture(existing)
	otps.values["otp:alice@example.com"] = "123456"

	err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email: "alice@example.com", OTP: "000000", NewPassword: "newsecret123",
	})
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("ResetPassword() error = %v, want %v", err, ErrInvalidOTP)
	}
}
