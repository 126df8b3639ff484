package licensebus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/licensekey"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID map[uuid.UUID]licensebus.License

	// failFirstCreate simulates losing the insert race to a concurrent
	// webhook delivery.
	failFirstCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[uuid.UUID]licensebus.License)}
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (licensebus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(_ context.Context, lic licensebus.License) error {
	if s.failFirstCreate {
		s.failFirstCreate = false
		winner := lic
		winner.ID = uuid.New()
		s.byID[winner.ID] = winner
		return licensebus.ErrDuplicatePurchase
	}

	for _, cur := range s.byID {
		if cur.Provider == lic.Provider && cur.PurchaseID == lic.PurchaseID {
			return licensebus.ErrDuplicatePurchase
		}
		if cur.Key == lic.Key {
			return licensebus.ErrKeyCollision
		}
	}
	s.byID[lic.ID] = lic
	return nil
}

func (s *fakeStore) Update(_ context.Context, lic licensebus.License) (int64, error) {
	if _, exists := s.byID[lic.ID]; !exists {
		return 0, nil
	}
	s.byID[lic.ID] = lic
	return 1, nil
}

func (s *fakeStore) QueryByKey(_ context.Context, key licensekey.Key) (licensebus.License, error) {
	for _, lic := range s.byID {
		if lic.Key == key {
			return lic, nil
		}
	}
	return licensebus.License{}, licensebus.ErrNotFound
}

func (s *fakeStore) QueryByPurchaseID(_ context.Context, provider string, purchaseID string) (licensebus.License, error) {
	for _, lic := range s.byID {
		if lic.Provider == provider && lic.PurchaseID == purchaseID {
			return lic, nil
		}
	}
	return licensebus.License{}, licensebus.ErrNotFound
}

func (s *fakeStore) Query(_ context.Context) ([]licensebus.License, error) {
	var lics []licensebus.License
	for _, lic := range s.byID {
		lics = append(lics, lic)
	}
	return lics, nil
}

// =============================================================================

func Test_IssueFromPayment_Idempotent(t *testing.T) {
	core := licensebus.NewCore(newFakeStore())
	ctx := context.Background()

	evt := licensebus.PaymentEvent{PurchaseID: "ord_123", Email: "ada@example.com"}

	first, err := core.IssueFromPayment(ctx, "stripe", evt)
	require.NoError(t, err)
	require.Equal(t, licensebus.StatusActive, first.Status)

	// A redelivered webhook returns the same license, not a second one.
	second, err := core.IssueFromPayment(ctx, "stripe", evt)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Key, second.Key)

	lics, err := core.Query(ctx)
	require.NoError(t, err)
	require.Len(t, lics, 1)
}

func Test_IssueFromPayment_ProviderScoped(t *testing.T) {
	core := licensebus.NewCore(newFakeStore())
	ctx := context.Background()

	evt := licensebus.PaymentEvent{PurchaseID: "ord_789", Email: "ada@example.com"}

	// The purchase id only identifies a sale within one provider. The same
	// string from a second provider is a different purchase and gets its
	// own license.
	first, err := core.IssueFromPayment(ctx, "stripe", evt)
	require.NoError(t, err)

	second, err := core.IssueFromPayment(ctx, "paddle", evt)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.Key, second.Key)

	lics, err := core.Query(ctx)
	require.NoError(t, err)
	require.Len(t, lics, 2)
}

func Test_IssueFromPayment_ConcurrentDelivery(t *testing.T) {
	store := newFakeStore()
	store.failFirstCreate = true
	core := licensebus.NewCore(store)

	lic, err := core.IssueFromPayment(context.Background(), "stripe", licensebus.PaymentEvent{PurchaseID: "ord_456"})
	require.NoError(t, err)

	// The license returned is the one the winning delivery created.
	existing, err := store.QueryByPurchaseID(context.Background(), "stripe", "ord_456")
	require.NoError(t, err)
	require.Equal(t, existing.ID, lic.ID)
}

func Test_IssueFromPayment_SeparateProviders(t *testing.T) {
	core := licensebus.NewCore(newFakeStore())
	ctx := context.Background()

	a, err := core.IssueFromPayment(ctx, "stripe", licensebus.PaymentEvent{PurchaseID: "ord_1"})
	require.NoError(t, err)
	b, err := core.IssueFromPayment(ctx, "paddle", licensebus.PaymentEvent{PurchaseID: "ord_2"})
	require.NoError(t, err)
	require.NotEqual(t, a.Key, b.Key)
}

func Test_Validate_Stages(t *testing.T) {
	core := licensebus.NewCore(newFakeStore())
	ctx := context.Background()

	lic, err := core.IssueFromPayment(ctx, "stripe", licensebus.PaymentEvent{PurchaseID: "ord_123"})
	require.NoError(t, err)

	got, err := core.Validate(ctx, lic.Key.String())
	require.NoError(t, err)
	require.Equal(t, lic.ID, got.ID)

	// Normalization happens before the shape check.
	got, err = core.Validate(ctx, "  "+lic.Key.String()+" ")
	require.NoError(t, err)
	require.Equal(t, lic.ID, got.ID)

	_, err = core.Validate(ctx, "not a key")
	require.ErrorIs(t, err, licensebus.ErrMalformedKey)

	_, err = core.Validate(ctx, "PJ-AAAAAA-BBBBBB-CCCCCC")
	require.ErrorIs(t, err, licensebus.ErrUnknownKey)

	_, err = core.Revoke(ctx, lic.Key)
	require.NoError(t, err)

	_, err = core.Validate(ctx, lic.Key.String())
	require.ErrorIs(t, err, licensebus.ErrInactive)
}

func Test_Validate_Expired(t *testing.T) {
	core := licensebus.NewCore(newFakeStore())
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	lic, err := core.IssueFromPayment(ctx, "stripe", licensebus.PaymentEvent{PurchaseID: "ord_123", ExpiresAt: &past})
	require.NoError(t, err)

	_, err = core.Validate(ctx, lic.Key.String())
	require.ErrorIs(t, err, licensebus.ErrExpired)
}
