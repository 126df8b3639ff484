// Package membercache caches per-user membership lists. Memberships are
// read on every authenticated request to build the principal, so reads are
// served from a short lived cache and writes invalidate it.
package membercache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/memberbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for membership data and caching.
type Store struct {
	log    *logger.Logger
	storer memberbus.Storer
	cache  *sturdyc.Client[[]memberbus.Member]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer memberbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[[]memberbus.Member](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with a storer
// inside a transaction. The cache is bypassed under a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (memberbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new membership and invalidates the user's cached list.
func (s *Store) Create(ctx context.Context, mbr memberbus.Member) error {
	if err := s.storer.Create(ctx, mbr); err != nil {
		return err
	}

	s.cache.Delete(mbr.UserID.String())

	return nil
}

// Update replaces a membership and invalidates the user's cached list.
func (s *Store) Update(ctx context.Context, mbr memberbus.Member) error {
	if err := s.storer.Update(ctx, mbr); err != nil {
		return err
	}

	s.cache.Delete(mbr.UserID.String())

	return nil
}

// Delete removes a membership and invalidates the user's cached list.
func (s *Store) Delete(ctx context.Context, mbr memberbus.Member) error {
	if err := s.storer.Delete(ctx, mbr); err != nil {
		return err
	}

	s.cache.Delete(mbr.UserID.String())

	return nil
}

// QueryByID gets the specified membership scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, memberID uuid.UUID) (memberbus.Member, error) {
	return s.storer.QueryByID(ctx, workspaceID, memberID)
}

// QueryByWorkspace returns the team of a workspace.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]memberbus.Detail, error) {
	return s.storer.QueryByWorkspace(ctx, workspaceID)
}

// QueryByUser returns the memberships of a user from the cache or
// database.
func (s *Store) QueryByUser(ctx context.Context, userID uuid.UUID) ([]memberbus.Member, error) {
	if mbrs, exists := s.cache.Get(userID.String()); exists {
		return mbrs, nil
	}

	mbrs, err := s.storer.QueryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(userID.String(), mbrs)

	return mbrs, nil
}
