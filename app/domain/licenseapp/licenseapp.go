// Package licenseapp maintains the app layer api for license issuance and
// validation. The webhook and validate endpoints are public, the
// generation endpoints are guarded by the admin token.
package licenseapp

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/app/sdk/errs"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/licensebus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/web"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/licensekey"
)

type app struct {
	licenseBus *licensebus.Core
	adminToken string
}

func newApp(licenseBus *licensebus.Core, adminToken string) *app {
	return &app{
		licenseBus: licenseBus,
		adminToken: adminToken,
	}
}

// admin verifies the request carries the admin token. Issuance outside the
// payment flow is an operator action, not a tenant one.
func (a *app) admin(r *http.Request) *errs.Error {
	token := r.Header.Get("X-Admin-Token")

	if a.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
		return errs.Errorf(errs.PermissionDenied, "admin access denied")
	}

	return nil
}

// webhook turns a payment provider event into a license. Providers
// redeliver events, so a replay returns the already issued license.
func (a *app) webhook(ctx context.Context, r *http.Request) web.Encoder {
	provider := web.Param(r, "provider")

	var app PaymentEvent
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/x-www-form-urlencoded") {
		if err := web.DecodeForm(r, &app); err != nil {
			return errs.New(errs.InvalidArgument, err)
		}
	} else {
		if err := web.Decode(r, &app); err != nil {
			return errs.New(errs.InvalidArgument, err)
		}
	}

	evt, err := toBusPaymentEvent(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	lic, err := a.licenseBus.IssueFromPayment(ctx, provider, evt)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "issuefrompayment: provider[%s] purchaseID[%s]: %s", provider, evt.PurchaseID, err)
	}

	return toAppLicense(lic)
}

// validate checks a raw license key and reports why it is not valid.
func (a *app) validate(ctx context.Context, r *http.Request) web.Encoder {
	var app ValidateLicense
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	lic, err := a.licenseBus.Validate(ctx, app.Key)
	if err != nil {
		switch {
		case errors.Is(err, licensebus.ErrMalformedKey):
			return toAppValidation(licensebus.License{}, "malformed")
		case errors.Is(err, licensebus.ErrUnknownKey):
			return toAppValidation(licensebus.License{}, "unknown")
		case errors.Is(err, licensebus.ErrInactive):
			return toAppValidation(licensebus.License{}, "inactive")
		case errors.Is(err, licensebus.ErrExpired):
			return toAppValidation(licensebus.License{}, "expired")
		}
		return errs.Errorf(errs.Internal, "validate: %s", err)
	}

	return toAppValidation(lic, "")
}

// generate mints a license outside the payment flow.
func (a *app) generate(ctx context.Context, r *http.Request) web.Encoder {
	if err := a.admin(r); err != nil {
		return err
	}

	var app GenerateLicense
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	expiresAt, err := toBusExpiresAt(app.ExpiresAt)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	lic, err := a.licenseBus.Generate(ctx, app.Email, expiresAt)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "generate: email[%s]: %s", app.Email, err)
	}

	return toAppLicense(lic)
}

// revoke deactivates a license by its key.
func (a *app) revoke(ctx context.Context, r *http.Request) web.Encoder {
	if err := a.admin(r); err != nil {
		return err
	}

	var app ValidateLicense
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	key, err := licensekey.Parse(app.Key)
	if err != nil {
		return errs.New(errs.InvalidArgument, licensebus.ErrMalformedKey)
	}

	lic, err := a.licenseBus.Revoke(ctx, key)
	if err != nil {
		if errors.Is(err, licensebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "revoke: %s", err)
	}

	return toAppLicense(lic)
}

// query returns every issued license.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	if err := a.admin(r); err != nil {
		return err
	}

	lics, err := a.licenseBus.Query(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return toAppLicenses(lics)
}
