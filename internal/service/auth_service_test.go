package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tenant-service/internal/domain"
	"github.com/spec-kit/tenant-service/internal/events"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

func newAuthService(users *memUserRepo) (*AuthService, *memResetRepo) {
	resets := newMemResetRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: resets,
		Dispatcher:        events.NewInMemoryDispatcher(),
	})
	return svc, resets
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)

	user, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "secret123", user.PasswordHash)

	token, expiresAt, err := svc.Login(ctx, "a@b.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	// The issued token is accepted by the verifier the guard uses.
	subjectID, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, subjectID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)

	_, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "other-password")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "DUPLICATE_IDENTITY", domainErr.Code)
	require.Equal(t, "Email already registered", domainErr.Message)
}

func TestRegister_DuplicateRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// The pre-insert lookup misses, so the insert itself hits the unique
	// index, as happens when two registrations race.
	users := newMemUserRepo()
	svc, _ := newAuthService(users)
	_, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	racing := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:          &blindUserRepo{users},
		PasswordResetRepo: newMemResetRepo(),
	})
	_, err = racing.Register(ctx, "a@b.com", "secret123")
	require.Error(t, err)
	require.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(err).Code)
}

func TestRegister_EmailNormalized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)

	user, err := svc.Register(ctx, "  A@B.Com ", "secret123")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)

	_, err = svc.Register(ctx, "a@b.com", "secret123")
	require.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(err).Code)

	_, _, err = svc.Login(ctx, "A@B.COM", "secret123")
	require.NoError(t, err)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), "a@b.com", strings.Repeat("x", 73))
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestLogin_UniformFailureShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)
	_, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "a@b.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@b.com", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)

	// Both failures must be indistinguishable to the client.
	wrongErr := apperrors.ToDomainError(wrongPassword)
	unknownErr := apperrors.ToDomainError(unknownEmail)
	require.Equal(t, wrongErr.Code, unknownErr.Code)
	require.Equal(t, wrongErr.Message, unknownErr.Message)
	require.Equal(t, wrongErr.HTTPStatus, unknownErr.HTTPStatus)
	require.Equal(t, "Invalid credentials", wrongErr.Message)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, _ := newAuthService(users)
	user, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "newsecret")
	require.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "secret123", "newsecret"))

	_, _, err = svc.Login(ctx, "a@b.com", "secret123")
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "a@b.com", "newsecret")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserRepo()
	svc, resets := newAuthService(users)
	_, err := svc.Register(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	// Unknown email succeeds silently.
	require.NoError(t, svc.RequestPasswordReset(ctx, "nobody@b.com"))
	require.Empty(t, resets.byToken)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@b.com"))
	require.Len(t, resets.byToken, 1)

	var tokenStr string
	for key := range resets.byToken {
		tokenStr = key
	}

	require.NoError(t, svc.ConfirmPasswordReset(ctx, tokenStr, "resetsecret"))
	_, _, err = svc.Login(ctx, "a@b.com", "resetsecret")
	require.NoError(t, err)

	// Tokens are single use.
	err = svc.ConfirmPasswordReset(ctx, tokenStr, "again")
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// Unknown tokens fail the same way.
	err = svc.ConfirmPasswordReset(ctx, "no-such-token", "whatever")
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
