// Package intakecache wraps the intake store with caching for public token
// resolution, the one lookup every anonymous submission pays for.
package intakecache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/leadbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for intake data and caching.
type Store struct {
	log    *logger.Logger
	storer leadbus.Storer
	cache  *sturdyc.Client[leadbus.IntakeLink]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer leadbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[leadbus.IntakeLink](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with a storer
// inside a transaction. The cache is bypassed under a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (leadbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// CreateLink inserts a new intake link into the database.
func (s *Store) CreateLink(ctx context.Context, lnk leadbus.IntakeLink) error {
	if err := s.storer.CreateLink(ctx, lnk); err != nil {
		return err
	}

	s.cache.Set(lnk.Token, lnk)

	return nil
}

// UpdateLink replaces an intake link document in the database. The cached
// token entry is refreshed so a deactivation takes effect immediately.
func (s *Store) UpdateLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	affected, err := s.storer.UpdateLink(ctx, lnk)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.cache.Set(lnk.Token, lnk)
	}

	return affected, nil
}

// DeleteLink removes an intake link from the database.
func (s *Store) DeleteLink(ctx context.Context, lnk leadbus.IntakeLink) (int64, error) {
	affected, err := s.storer.DeleteLink(ctx, lnk)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.cache.Delete(lnk.Token)
	}

	return affected, nil
}

// QueryLinks retrieves the intake links of a workspace.
func (s *Store) QueryLinks(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.IntakeLink, error) {
	return s.storer.QueryLinks(ctx, p, workspaceID)
}

// QueryLinkByID gets the specified intake link scoped to a workspace.
func (s *Store) QueryLinkByID(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (leadbus.IntakeLink, error) {
	return s.storer.QueryLinkByID(ctx, workspaceID, linkID)
}

// QueryLinkByToken resolves an intake link from the cache or database.
func (s *Store) QueryLinkByToken(ctx context.Context, token string) (leadbus.IntakeLink, error) {
	if lnk, exists := s.cache.Get(token); exists {
		return lnk, nil
	}

	lnk, err := s.storer.QueryLinkByToken(ctx, token)
	if err != nil {
		return leadbus.IntakeLink{}, err
	}

	s.cache.Set(lnk.Token, lnk)

	return lnk, nil
}

// CreateLead inserts a new lead into the database.
func (s *Store) CreateLead(ctx context.Context, led leadbus.Lead) error {
	return s.storer.CreateLead(ctx, led)
}

// UpdateLead replaces a lead document in the database.
func (s *Store) UpdateLead(ctx context.Context, led leadbus.Lead) (int64, error) {
	return s.storer.UpdateLead(ctx, led)
}

// QueryLeads retrieves the leads of a workspace.
func (s *Store) QueryLeads(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID) ([]leadbus.Lead, error) {
	return s.storer.QueryLeads(ctx, p, workspaceID)
}

// QueryLeadByID gets the specified lead scoped to a workspace.
func (s *Store) QueryLeadByID(ctx context.Context, workspaceID uuid.UUID, leadID uuid.UUID) (leadbus.Lead, error) {
	return s.storer.QueryLeadByID(ctx, workspaceID, leadID)
}
