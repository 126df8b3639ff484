// Package licensebus provides business access to self-hosted license
// issuance and validation.
package licensebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/licensekey"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/otel"
)

// Set of error variables. Validation reports each failure stage with its
// own error so the caller can tell a typo from a revocation.
var (
	ErrNotFound          = errors.New("license not found")
	ErrMalformedKey      = errors.New("license key is malformed")
	ErrUnknownKey        = errors.New("license key is unknown")
	ErrInactive          = errors.New("license is not active")
	ErrExpired           = errors.New("license has expired")
	ErrDuplicatePurchase = errors.New("purchase already issued")
	ErrKeyCollision      = errors.New("license key collision")
)

// Set of license statuses.
const (
	StatusActive   = "ACTIVE"
	StatusRevoked  = "REVOKED"
	StatusRefunded = "REFUNDED"
)

// keyRetries bounds how often issuance retries after a generated key
// collides with an existing one.
const keyRetries = 3

// License represents a purchased right to run the software.
type License struct {
	ID         uuid.UUID
	Key        licensekey.Key
	PurchaseID string
	Provider   string
	Email      string
	Status     string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentEvent carries the fields of a payment provider webhook that
// issuance cares about.
type PaymentEvent struct {
	PurchaseID string
	Email      string
	ExpiresAt  *time.Time
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, lic License) error
	Update(ctx context.Context, lic License) (int64, error)
	QueryByKey(ctx context.Context, key licensekey.Key) (License, error)
	QueryByPurchaseID(ctx context.Context, provider string, purchaseID string) (License, error)
	Query(ctx context.Context) ([]License, error)
}

// Core manages the set of APIs for license access.
type Core struct {
	storer Storer
}

// NewCore constructs a license core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the specified
// transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		storer: storer,
	}

	return &core, nil
}

// IssueFromPayment turns a payment webhook into a license. Providers
// redeliver webhooks, so issuance is idempotent on the purchase id: the
// first delivery mints a key, every later one returns the same license.
func (c *Core) IssueFromPayment(ctx context.Context, provider string, evt PaymentEvent) (License, error) {
	ctx, span := otel.AddSpan(ctx, "business.licensebus.issuefrompayment")
	defer span.End()

	if lic, err := c.storer.QueryByPurchaseID(ctx, provider, evt.PurchaseID); err == nil {
		return lic, nil
	}

	for attempt := 0; attempt < keyRetries; attempt++ {
		key, err := licensekey.Generate()
		if err != nil {
			return License{}, fmt.Errorf("generate: %w", err)
		}

		now := time.Now()

		lic := License{
			ID:         uuid.New(),
			Key:        key,
			PurchaseID: evt.PurchaseID,
			Provider:   provider,
			Email:      evt.Email,
			Status:     StatusActive,
			ExpiresAt:  evt.ExpiresAt,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err = c.storer.Create(ctx, lic)
		switch {
		case err == nil:
			return lic, nil

		case errors.Is(err, ErrDuplicatePurchase):
			// A concurrent delivery of the same webhook won the insert.
			// The row it created is the answer.
			existing, qerr := c.storer.QueryByPurchaseID(ctx, provider, evt.PurchaseID)
			if qerr != nil {
				return License{}, fmt.Errorf("querybypurchase: %w", qerr)
			}
			return existing, nil

		case errors.Is(err, ErrKeyCollision):
			continue

		default:
			return License{}, fmt.Errorf("create: %w", err)
		}
	}

	return License{}, ErrKeyCollision
}

// Generate mints a license by hand, outside any payment flow.
func (c *Core) Generate(ctx context.Context, email string, expiresAt *time.Time) (License, error) {
	ctx, span := otel.AddSpan(ctx, "business.licensebus.generate")
	defer span.End()

	evt := PaymentEvent{
		PurchaseID: "manual-" + uuid.NewString(),
		Email:      email,
		ExpiresAt:  expiresAt,
	}

	return c.IssueFromPayment(ctx, "manual", evt)
}

// Validate checks a raw license key. The checks run in order: shape, then
// existence, then status, then expiry, and the first failure wins.
func (c *Core) Validate(ctx context.Context, raw string) (License, error) {
	ctx, span := otel.AddSpan(ctx, "business.licensebus.validate")
	defer span.End()

	key, err := licensekey.Parse(raw)
	if err != nil {
		return License{}, ErrMalformedKey
	}

	lic, err := c.storer.QueryByKey(ctx, key)
	if err != nil {
		return License{}, ErrUnknownKey
	}

	if lic.Status != StatusActive {
		return License{}, ErrInactive
	}

	if lic.ExpiresAt != nil && time.Now().After(*lic.ExpiresAt) {
		return License{}, ErrExpired
	}

	return lic, nil
}

// Revoke marks a license as revoked. Validation fails for it from then on.
func (c *Core) Revoke(ctx context.Context, key licensekey.Key) (License, error) {
	ctx, span := otel.AddSpan(ctx, "business.licensebus.revoke")
	defer span.End()

	lic, err := c.storer.QueryByKey(ctx, key)
	if err != nil {
		return License{}, ErrNotFound
	}

	lic.Status = StatusRevoked
	lic.UpdatedAt = time.Now()

	affected, err := c.storer.Update(ctx, lic)
	if err != nil {
		return License{}, fmt.Errorf("update: %w", err)
	}
	if affected == 0 {
		return License{}, ErrNotFound
	}

	return lic, nil
}

// Query retrieves all licenses for operator tooling.
func (c *Core) Query(ctx context.Context) ([]License, error) {
	ctx, span := otel.AddSpan(ctx, "business.licensebus.query")
	defer span.End()

	lics, err := c.storer.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return lics, nil
}
