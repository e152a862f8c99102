package service

import (
	"context"
	"testing"
	"time"

	"eventsync-backend/core/config"
	"eventsync-backend/core/errors"
	"eventsync-backend/modules/auth/dto"
	"eventsync-backend/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOrCreate(_ context.Context, email, name string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	u := &entity.User{ID: uuid.New(), Email: email, Name: name}
	r.byEmail[email] = u
	return u, nil
}

type fakeTokenRepo struct {
	tokens []entity.AuthToken
}

func (r *fakeTokenRepo) Create(_ context.Context, t *entity.AuthToken) error {
	t.ID = uuid.New()
	r.tokens = append(r.tokens, *t)
	return nil
}

func (r *fakeTokenRepo) GetActiveByEmail(_ context.Context, email string) ([]entity.AuthToken, error) {
	var out []entity.AuthToken
	for _, t := range r.tokens {
		if t.Email == email && !t.Used {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTokenRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	for i := range r.tokens {
		if r.tokens[i].ID == id {
			r.tokens[i].Used = true
		}
	}
	return nil
}

type fakeCache struct {
	blacklisted map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{blacklisted: make(map[string]time.Duration)}
}

func (c *fakeCache) BlacklistToken(_ context.Context, token string, ttl time.Duration) error {
	c.blacklisted[token] = ttl
	return nil
}

func (c *fakeCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	_, ok := c.blacklisted[token]
	return ok, nil
}

func (c *fakeCache) Close() error { return nil }

type capturingDispatcher struct {
	codes map[string]string
}

func newCapturingDispatcher() *capturingDispatcher {
	return &capturingDispatcher{codes: make(map[string]string)}
}

func (d *capturingDispatcher) DispatchVerificationEmail(_ context.Context, to, code string) error {
	d.codes[to] = code
	return nil
}

func (d *capturingDispatcher) DispatchInviteEmail(_ context.Context, _, _, _ string) error {
	return nil
}

func (d *capturingDispatcher) DispatchFinalizedEmail(_ context.Context, _, _, _, _ string) error {
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo, *fakeCache, *capturingDispatcher) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := config.Load()
	require.NoError(t, err)

	users := newFakeUserRepo()
	tokens := &fakeTokenRepo{}
	c := newFakeCache()
	dispatcher := newCapturingDispatcher()

	svc := &AuthService{
		users:      users,
		tokens:     tokens,
		cache:      c,
		dispatcher: dispatcher,
		now:        time.Now,
	}
	return svc, users, tokens, c, dispatcher
}

func TestSendCode(t *testing.T) {
	svc, _, tokens, _, dispatcher := newTestAuthService(t)

	appErr := svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: "  Alice@Example.com "})
	require.Nil(t, appErr)

	require.Len(t, tokens.tokens, 1)
	stored := tokens.tokens[0]
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.False(t, stored.Used)
	assert.True(t, stored.ExpiresAt.After(time.Now()))

	code := dispatcher.codes["alice@example.com"]
	require.Len(t, code, 6)
	// the stored value is a hash, never the code itself
	assert.NotEqual(t, code, stored.CodeHash)
}

func TestSendCodeEmptyEmail(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	appErr := svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: "   "})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestVerifyCodeIssuesSession(t *testing.T) {
	svc, users, tokens, _, dispatcher := newTestAuthService(t)

	require.Nil(t, svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: "alice@example.com"}))
	code := dispatcher.codes["alice@example.com"]

	resp, appErr := svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{
		Email: "alice@example.com",
		Code:  code,
	})
	require.Nil(t, appErr)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "alice", resp.User.Name)

	// user was created lazily, code is burned
	assert.NotNil(t, users.byEmail["alice@example.com"])
	assert.True(t, tokens.tokens[0].Used)

	// a used code cannot be replayed
	_, appErr = svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{
		Email: "alice@example.com",
		Code:  code,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestVerifyCodeWrongCode(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	require.Nil(t, svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: "alice@example.com"}))

	_, appErr := svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{
		Email: "alice@example.com",
		Code:  "000000",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestVerifyCodeExpired(t *testing.T) {
	svc, _, _, _, dispatcher := newTestAuthService(t)

	require.Nil(t, svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: "alice@example.com"}))
	code := dispatcher.codes["alice@example.com"]

	// move the clock past the code's TTL
	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, appErr := svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{
		Email: "alice@example.com",
		Code:  code,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestVerifyCodeValidation(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	_, appErr := svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{Email: "", Code: "123456"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.VerifyCode(context.Background(), &dto.VerifyCodeRequest{Email: "alice@example.com", Code: ""})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetCurrentUser(t *testing.T) {
	svc, users, _, _, _ := newTestAuthService(t)

	u, err := users.FindOrCreate(context.Background(), "alice@example.com", "alice")
	require.NoError(t, err)

	resp, appErr := svc.GetCurrentUser(context.Background(), u.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "alice@example.com", resp.Email)

	_, appErr = svc.GetCurrentUser(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, _, c, _ := newTestAuthService(t)

	appErr := svc.Logout(context.Background(), "some-session-token", time.Now().Add(time.Hour))
	require.Nil(t, appErr)

	blacklisted, err := c.IsTokenBlacklisted(context.Background(), "some-session-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
