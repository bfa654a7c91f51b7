package api

import (
	"errors"
	"net/http"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/currency"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/qrcode"
)

var (
	ErrInvalidProfile = errors.New("api: invalid profile")
	ErrAuthRequired   = errors.New("api: authentication required")
	ErrNegativeUsage  = errors.New("api: usage must not be negative")
)

var (
	errPlanNotFound        = handler.HTTPError{Status: http.StatusNotFound, Code: "plan_not_found"}
	errQuotaNotFound       = handler.HTTPError{Status: http.StatusNotFound, Code: "quota_not_found"}
	errLimitExceeded       = handler.HTTPError{Status: http.StatusForbidden, Code: "limit_exceeded"}
	errUnsupportedCurrency = handler.HTTPError{Status: http.StatusUnprocessableEntity, Code: "unsupported_currency"}
	errInvalidCycle        = handler.HTTPError{Status: http.StatusBadRequest, Code: "invalid_billing_cycle"}
	errInvalidQRCode       = handler.HTTPError{Status: http.StatusBadRequest, Code: "invalid_qr_code"}
)

// httpError maps domain errors to their HTTP form. The original error stays in
// the chain so it can still be matched with errors.Is.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrInvalidProfile):
		return errors.Join(handler.ErrUnauthorized, err)
	case errors.Is(err, ErrNegativeUsage):
		return errors.Join(handler.ErrUnprocessableEntity, err)
	case errors.Is(err, entitlement.ErrUnknownPlan):
		return errors.Join(errPlanNotFound, err)
	case errors.Is(err, entitlement.ErrQuotaNotFound):
		return errors.Join(errQuotaNotFound, err)
	case errors.Is(err, entitlement.ErrLimitExceeded):
		return errors.Join(errLimitExceeded, err)
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return errors.Join(errUnsupportedCurrency, err)
	case errors.Is(err, currency.ErrInvalidBillingCycle):
		return errors.Join(errInvalidCycle, err)
	case errors.Is(err, qrcode.ErrInvalidSurveyID), errors.Is(err, qrcode.ErrInvalidSize):
		return errors.Join(errInvalidQRCode, err)
	}
	return err
}

func errorResponse(err error) handler.Response {
	return handler.JSONError(httpError(err))
}
