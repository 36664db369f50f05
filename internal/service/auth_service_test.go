package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-ferre-inventory/internal/session"
	"go-ferre-inventory/internal/view"
	"go-ferre-inventory/pkg/jwt"
)

func newAuth(t *testing.T) (AuthService, *session.Registry) {
	reg := session.NewRegistry(nil, nil, 0)
	return NewAuthService(reg, "test-secret", time.Hour, zaptest.NewLogger(t)), reg
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth, reg := newAuth(t)

	resp, err := auth.Login(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, view.ScreenDashboard, resp.State.Screen)
	assert.Equal(t, 1, reg.Len())

	sess, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, sess.ID)
}

func TestAuthService_LoginRequiresUsername(t *testing.T) {
	auth, reg := newAuth(t)

	_, err := auth.Login(context.Background(), " ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Equal(t, 0, reg.Len())
}

func TestAuthService_ValidateRejectsBadTokens(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.ValidateToken("garbage")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	orphan, err := jwt.GenerateToken([]byte("test-secret"), "no-such-session", "ana", time.Hour)
	require.NoError(t, err)
	_, err = auth.ValidateToken(orphan)
	assert.ErrorIs(t, err, view.ErrNotLoggedIn)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	auth, reg := newAuth(t)

	resp, err := auth.Login(ctx, "ana")
	require.NoError(t, err)
	sess, err := reg.Get(resp.SessionID)
	require.NoError(t, err)

	t.Run("only from the dashboard", func(t *testing.T) {
		require.NoError(t, sess.Machine.Open(ctx, view.ScreenSalesList))
		assert.ErrorIs(t, auth.Logout(ctx, sess), view.ErrInvalidTransition)
		assert.Equal(t, 1, reg.Len())
		require.NoError(t, sess.Machine.Back(ctx))
	})

	t.Run("closes the session", func(t *testing.T) {
		require.NoError(t, auth.Logout(ctx, sess))
		assert.Equal(t, view.ScreenLogin, sess.Machine.State().Screen)
		_, err := auth.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, view.ErrNotLoggedIn)
	})
}
