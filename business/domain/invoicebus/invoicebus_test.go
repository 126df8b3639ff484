package invoicebus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/invoicebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/money"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/role"
	"github.com/stretchr/testify/require"
)

var (
	wsA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	wsB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func memberOf(ws uuid.UUID) tenancy.Principal {
	return tenancy.NewPrincipal(uuid.New(), map[uuid.UUID]role.Role{ws: role.Member})
}

type fakeStore struct {
	invoices map[uuid.UUID]invoicebus.Invoice
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (invoicebus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(_ context.Context, inv invoicebus.Invoice) error {
	for _, cur := range s.invoices {
		if cur.WorkspaceID == inv.WorkspaceID && cur.Number == inv.Number {
			return invoicebus.ErrUniqueNumber
		}
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *fakeStore) Update(_ context.Context, inv invoicebus.Invoice) (int64, error) {
	cur, exists := s.invoices[inv.ID]
	if !exists || cur.WorkspaceID != inv.WorkspaceID {
		return 0, nil
	}
	s.invoices[inv.ID] = inv
	return 1, nil
}

func (s *fakeStore) Delete(_ context.Context, inv invoicebus.Invoice) (int64, error) {
	cur, exists := s.invoices[inv.ID]
	if !exists || cur.WorkspaceID != inv.WorkspaceID {
		return 0, nil
	}
	delete(s.invoices, inv.ID)
	return 1, nil
}

func (s *fakeStore) Query(_ context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]invoicebus.Invoice, error) {
	var invs []invoicebus.Invoice
	for _, inv := range s.invoices {
		if inv.WorkspaceID == workspaceID {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

func (s *fakeStore) QueryByID(_ context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) (invoicebus.Invoice, error) {
	inv, exists := s.invoices[invoiceID]
	if !exists || inv.WorkspaceID != workspaceID {
		return invoicebus.Invoice{}, invoicebus.ErrNotFound
	}
	return inv, nil
}

func (s *fakeStore) QueryItems(_ context.Context, workspaceID uuid.UUID, invoiceID uuid.UUID) ([]invoicebus.LineItem, error) {
	inv, exists := s.invoices[invoiceID]
	if !exists || inv.WorkspaceID != workspaceID {
		return nil, nil
	}
	return inv.Items, nil
}

func newTestCore() *invoicebus.Core {
	return invoicebus.NewCore(&fakeStore{invoices: make(map[uuid.UUID]invoicebus.Invoice)})
}

func Test_Create_TotalDerived(t *testing.T) {
	core := newTestCore()
	ctx := context.Background()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invoicebus.NewInvoice{
		ClientID:  uuid.New(),
		Number:    "INV-0001",
		IssueDate: time.Now(),
		Currency:  "USD",
		Items: []invoicebus.NewLineItem{
			{Description: "Design", Quantity: 2, UnitPrice: money.FromCents(15000)},
			{Description: "Hosting", Quantity: 1, UnitPrice: money.FromCents(2500)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, invoicebus.StatusDraft, inv.Status)
	require.Equal(t, int64(32500), inv.Total.Cents())
	require.Len(t, inv.Items, 2)
	require.Equal(t, int64(30000), inv.Items[0].Amount.Cents())
}

func Test_Create_Validation(t *testing.T) {
	core := newTestCore()
	ctx := context.Background()
	p := memberOf(wsA)

	_, err := core.Create(ctx, p, wsA, invoicebus.NewInvoice{Number: "INV-0001"})
	require.ErrorIs(t, err, invoicebus.ErrNoItems)

	_, err = core.Create(ctx, p, wsA, invoicebus.NewInvoice{
		Number: "INV-0001",
		Items:  []invoicebus.NewLineItem{{Description: "Design", Quantity: 0}},
	})
	require.ErrorIs(t, err, invoicebus.ErrInvalidQuantity)
}

func Test_CrossTenant(t *testing.T) {
	core := newTestCore()
	ctx := context.Background()

	inv, err := core.Create(ctx, memberOf(wsA), wsA, invoicebus.NewInvoice{
		Number:    "INV-0001",
		IssueDate: time.Now(),
		Items:     []invoicebus.NewLineItem{{Description: "Design", Quantity: 1, UnitPrice: money.FromCents(100)}},
	})
	require.NoError(t, err)

	outsider := memberOf(wsB)

	_, err = core.QueryByID(ctx, outsider, wsA, inv.ID)
	require.ErrorIs(t, err, invoicebus.ErrNotFound)

	status := invoicebus.StatusPaid
	_, err = core.Update(ctx, outsider, wsA, inv.ID, invoicebus.UpdateInvoice{Status: &status})
	require.ErrorIs(t, err, invoicebus.ErrNotFound)

	err = core.Delete(ctx, outsider, wsA, inv.ID)
	require.ErrorIs(t, err, invoicebus.ErrNotFound)
}
