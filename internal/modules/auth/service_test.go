package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/mailer"
	"curtaincrm/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) SetResetToken(ctx context.Context, id int64, tokenHash string, expiry time.Time) error {
	args := m.Called(ctx, id, tokenHash, expiry)
	return args.Error(0)
}

func (m *mockUserRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error) {
	args := m.Called(ctx, tokenHash, now, passwordHash)
	return int64(args.Int(0)), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(users *mockUserRepo, tokens *mockTokens, mail *recordingMailer) *Service {
	s := NewService(users, tokens, mail, Options{
		BcryptCost:       bcrypt.MinCost,
		ResetTokenTTL:    time.Hour,
		ResetTokenPepper: "pepper",
		FrontendURL:      "http://app.test/",
	})
	s.now = func() time.Time { return fixedNow }
	return s
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := HashPassword(pw, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestRegister_Success(t *testing.T) {
	users, tokens, mail := new(mockUserRepo), new(mockTokens), &recordingMailer{}
	svc := newTestService(users, tokens, mail)
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "alice@x.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@x.com" && u.Role == domain.RoleUser && u.IsActive &&
			CheckPassword(u.PasswordHash, "secret1")
	})).Return(nil)
	tokens.On("GenerateToken", int64(1)).Return("jwt-token", nil)

	res, err := svc.Register(ctx, RegisterRequest{
		FirstName: " Alice ", LastName: "Martin", Email: " Alice@X.com ", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, "Alice", res.User.FirstName)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@x.com", mail.sent[0].To)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{})
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "alice@x.com", int64(0)).Return(true, nil)

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "Al", LastName: "Ma", Email: "alice@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateOnInsert(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{})
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "alice@x.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "Al", LastName: "Ma", Email: "alice@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_WelcomeEmailFailureIsSwallowed(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{err: errors.New("smtp down")})
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "bob@x.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(nil)
	tokens.On("GenerateToken", int64(1)).Return("t", nil)

	res, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Bob", LastName: "Stone", Email: "bob@x.com", Password: "secret1", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{})
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@x.com").Return(nil, repository.ErrNotFound)
	users.On("GetByEmail", ctx, "alice@x.com").Return(&domain.User{
		ID: 1, Email: "alice@x.com", PasswordHash: hashed(t, "secret1"), IsActive: true,
	}, nil)

	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "ghost@x.com", Password: "secret1"})
	_, errWrong := svc.Login(ctx, LoginRequest{Email: "alice@x.com", Password: "wrong-pw"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestLogin_Disabled(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{})
	ctx := context.Background()

	users.On("GetByEmail", ctx, "off@x.com").Return(&domain.User{
		ID: 2, PasswordHash: hashed(t, "secret1"), IsActive: false,
	}, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "off@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, err = svc.Login(ctx, LoginRequest{Email: "off@x.com", Password: "nope123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	users, tokens := new(mockUserRepo), new(mockTokens)
	svc := newTestService(users, tokens, &recordingMailer{})
	ctx := context.Background()

	users.On("GetByEmail", ctx, "alice@x.com").Return(&domain.User{
		ID: 7, PasswordHash: hashed(t, "secret1"), IsActive: true,
	}, nil)
	tokens.On("GenerateToken", int64(7)).Return("tok", nil)

	res, err := svc.Login(ctx, LoginRequest{Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	users, mail := new(mockUserRepo), &recordingMailer{}
	svc := newTestService(users, new(mockTokens), mail)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@x.com").Return(nil, repository.ErrNotFound)

	require.NoError(t, svc.ForgotPassword(ctx, "ghost@x.com"))
	assert.Empty(t, mail.sent)
	users.AssertNotCalled(t, "SetResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotPassword_StoresHashAndMailsToken(t *testing.T) {
	users, mail := new(mockUserRepo), &recordingMailer{}
	svc := newTestService(users, new(mockTokens), mail)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "alice@x.com").Return(&domain.User{ID: 1, Email: "alice@x.com", FirstName: "Alice"}, nil)

	var storedHash string
	users.On("SetResetToken", ctx, int64(1), mock.AnythingOfType("string"), fixedNow.Add(time.Hour)).
		Run(func(args mock.Arguments) { storedHash = args.String(2) }).
		Return(nil)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))
	require.Len(t, mail.sent, 1)

	const marker = "http://app.test/reset-password?token="
	text := mail.sent[0].Text
	idx := strings.Index(text, marker)
	require.GreaterOrEqual(t, idx, 0)
	token := text[idx+len(marker):]

	assert.Len(t, token, 2*resetTokenBytes)
	assert.Equal(t, HashResetToken(token, "pepper"), storedHash)
	assert.NotContains(t, storedHash, token)
}

func TestForgotPassword_DeliveryFailureSurfaces(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockTokens), &recordingMailer{err: errors.New("smtp down")})
	ctx := context.Background()

	users.On("GetByEmail", ctx, "alice@x.com").Return(&domain.User{ID: 1, Email: "alice@x.com"}, nil)
	users.On("SetResetToken", ctx, int64(1), mock.Anything, mock.Anything).Return(nil)

	err := svc.ForgotPassword(ctx, "alice@x.com")
	assert.ErrorIs(t, err, ErrEmailDelivery)
}

func TestResetPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockTokens), &recordingMailer{})
	ctx := context.Background()

	good := HashResetToken("good", "pepper")
	bad := HashResetToken("used", "pepper")
	users.On("ConsumeResetToken", ctx, good, fixedNow, mock.AnythingOfType("string")).Return(1, nil)
	users.On("ConsumeResetToken", ctx, bad, fixedNow, mock.AnythingOfType("string")).Return(0, repository.ErrNotFound)

	assert.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{Token: "good", NewPassword: "newpass1"}))
	assert.ErrorIs(t, svc.ResetPassword(ctx, ResetPasswordRequest{Token: "used", NewPassword: "newpass1"}), ErrInvalidResetToken)
}

func TestProfile_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockTokens), &recordingMailer{})
	ctx := context.Background()

	users.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

	_, err := svc.Profile(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNewResetToken(t *testing.T) {
	token, hash, expiry, err := NewResetToken(fixedNow, time.Hour, "p")
	require.NoError(t, err)

	other, _, _, err := NewResetToken(fixedNow, time.Hour, "p")
	require.NoError(t, err)

	assert.NotEqual(t, token, other)
	assert.Equal(t, HashResetToken(token, "p"), hash)
	assert.NotEqual(t, HashResetToken(token, "q"), hash)
	assert.Equal(t, fixedNow.Add(time.Hour), expiry)
}
