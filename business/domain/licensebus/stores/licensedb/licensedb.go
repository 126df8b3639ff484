// Package licensedb contains license related CRUD functionality.
package licensedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/licensekey"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for license database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (licensebus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

type licenseDB struct {
	ID         uuid.UUID    `db:"id"`
	LicenseKey string       `db:"license_key"`
	PurchaseID string       `db:"purchase_id"`
	Provider   string       `db:"provider"`
	Email      string       `db:"email"`
	Status     string       `db:"status"`
	ExpiresAt  sql.NullTime `db:"expires_at"`
	CreatedAt  time.Time    `db:"date_created"`
	UpdatedAt  time.Time    `db:"date_updated"`
}

func toDBLicense(bus licensebus.License) licenseDB {
	db := licenseDB{
		ID:         bus.ID,
		LicenseKey: bus.Key.String(),
		PurchaseID: bus.PurchaseID,
		Provider:   bus.Provider,
		Email:      bus.Email,
		Status:     bus.Status,
		CreatedAt:  bus.CreatedAt.UTC(),
		UpdatedAt:  bus.UpdatedAt.UTC(),
	}

	if bus.ExpiresAt != nil {
		db.ExpiresAt = sql.NullTime{Time: bus.ExpiresAt.UTC(), Valid: true}
	}

	return db
}

func toBusLicense(db licenseDB) (licensebus.License, error) {
	key, err := licensekey.Parse(db.LicenseKey)
	if err != nil {
		return licensebus.License{}, fmt.Errorf("parse key: %w", err)
	}

	bus := licensebus.License{
		ID:         db.ID,
		Key:        key,
		PurchaseID: db.PurchaseID,
		Provider:   db.Provider,
		Email:      db.Email,
		Status:     db.Status,
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}

	if db.ExpiresAt.Valid {
		t := db.ExpiresAt.Time.In(time.Local)
		bus.ExpiresAt = &t
	}

	return bus, nil
}

// Create inserts a new license into the database. The unique constraints
// separate a redelivered purchase from a generated key collision.
func (s *Store) Create(ctx context.Context, lic licensebus.License) error {
	const q = `
	INSERT INTO licenses
		(id, license_key, purchase_id, provider, email, status, expires_at, date_created, date_updated)
	VALUES
		(:id, :license_key, :purchase_id, :provider, :email, :status, :expires_at, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBLicense(lic)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			switch dupErr.Column {
			case "licenses_license_key_key":
				return fmt.Errorf("namedexeccontext: %w", licensebus.ErrKeyCollision)
			}
			return fmt.Errorf("namedexeccontext: %w", licensebus.ErrDuplicatePurchase)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a license document in the database and reports the rows
// affected.
func (s *Store) Update(ctx context.Context, lic licensebus.License) (int64, error) {
	const q = `
	UPDATE
		licenses
	SET
		status = :status,
		expires_at = :expires_at,
		date_updated = :date_updated
	WHERE
		id = :id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBLicense(lic))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryByKey gets the license identified by its key.
func (s *Store) QueryByKey(ctx context.Context, key licensekey.Key) (licensebus.License, error) {
	data := struct {
		LicenseKey string `db:"license_key"`
	}{
		LicenseKey: key.String(),
	}

	const q = `
	SELECT
		id, license_key, purchase_id, provider, email, status, expires_at, date_created, date_updated
	FROM
		licenses
	WHERE
		license_key = :license_key`

	var dbLic licenseDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLic); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return licensebus.License{}, fmt.Errorf("db: %w", licensebus.ErrNotFound)
		}
		return licensebus.License{}, fmt.Errorf("db: %w", err)
	}

	return toBusLicense(dbLic)
}

// QueryByPurchaseID gets the license issued for a provider purchase.
func (s *Store) QueryByPurchaseID(ctx context.Context, provider string, purchaseID string) (licensebus.License, error) {
	data := struct {
		Provider   string `db:"provider"`
		PurchaseID string `db:"purchase_id"`
	}{
		Provider:   provider,
		PurchaseID: purchaseID,
	}

	const q = `
	SELECT
		id, license_key, purchase_id, provider, email, status, expires_at, date_created, date_updated
	FROM
		licenses
	WHERE
		provider = :provider AND purchase_id = :purchase_id`

	var dbLic licenseDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbLic); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return licensebus.License{}, fmt.Errorf("db: %w", licensebus.ErrNotFound)
		}
		return licensebus.License{}, fmt.Errorf("db: %w", err)
	}

	return toBusLicense(dbLic)
}

// Query retrieves all licenses.
func (s *Store) Query(ctx context.Context) ([]licensebus.License, error) {
	const q = `
	SELECT
		id, license_key, purchase_id, provider, email, status, expires_at, date_created, date_updated
	FROM
		licenses
	ORDER BY
		date_created DESC`

	var dbLics []licenseDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, struct{}{}, &dbLics); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	lics := make([]licensebus.License, len(dbLics))
	for i, db := range dbLics {
		lic, err := toBusLicense(db)
		if err != nil {
			return nil, err
		}
		lics[i] = lic
	}

	return lics, nil
}
