package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/auth"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kid = "test-key-1"

type keyStore struct {
	privatePEM string
	publicPEM  string
}

func (ks keyStore) PrivateKey(string) (string, error) { return ks.privatePEM, nil }
func (ks keyStore) PublicKey(string) (string, error)  { return ks.publicPEM, nil }

func newKeyStore(t *testing.T) keyStore {
	t.Helper()

	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(private),
	})

	pub, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pub,
	})

	return keyStore{string(privatePEM), string(publicPEM)}
}

func newAuth(t *testing.T) *auth.Auth {
	t.Helper()

	log := logger.New(os.Stdout, logger.LevelError, "TEST", nil)

	a, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: newKeyStore(t),
		Issuer:    "projoflow",
	})
	require.NoError(t, err)

	return a
}

func Test_TokenRoundTrip(t *testing.T) {
	a := newAuth(t)
	userID := uuid.New()

	token, err := a.GenerateToken(kid, userID, auth.KindUser)
	require.NoError(t, err)

	claims, err := a.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	gotID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, auth.KindUser, claims.Kind)
}

func Test_Authenticate_Malformed(t *testing.T) {
	a := newAuth(t)

	_, err := a.Authenticate(context.Background(), "not-a-bearer")
	assert.Error(t, err)

	_, err = a.Authenticate(context.Background(), "Bearer bogus.token.value")
	assert.Error(t, err)
}

func Test_Authorize_Policy(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	t.Run("member", func(t *testing.T) {
		assert.NoError(t, a.Authorize(ctx, role.Member, auth.ObjRecords, auth.ActWrite))
		assert.NoError(t, a.Authorize(ctx, role.Member, auth.ObjTeam, auth.ActRead))
		assert.Error(t, a.Authorize(ctx, role.Member, auth.ObjTeam, auth.ActManage))
		assert.Error(t, a.Authorize(ctx, role.Member, auth.ObjSettings, auth.ActWrite))
	})

	t.Run("admin", func(t *testing.T) {
		assert.NoError(t, a.Authorize(ctx, role.Admin, auth.ObjRecords, auth.ActWrite))
		assert.NoError(t, a.Authorize(ctx, role.Admin, auth.ObjTeam, auth.ActManage))
		assert.Error(t, a.Authorize(ctx, role.Admin, auth.ObjSettings, auth.ActWrite))
		assert.Error(t, a.Authorize(ctx, role.Admin, auth.ObjBilling, auth.ActManage))
	})

	t.Run("owner", func(t *testing.T) {
		assert.NoError(t, a.Authorize(ctx, role.Owner, auth.ObjRecords, auth.ActWrite))
		assert.NoError(t, a.Authorize(ctx, role.Owner, auth.ObjTeam, auth.ActManage))
		assert.NoError(t, a.Authorize(ctx, role.Owner, auth.ObjSettings, auth.ActWrite))
		assert.NoError(t, a.Authorize(ctx, role.Owner, auth.ObjBilling, auth.ActManage))
	})
}
