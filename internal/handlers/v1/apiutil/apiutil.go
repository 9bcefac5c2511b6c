// Package apiutil holds the request and error conventions shared by the v1
// handlers.
package apiutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/errs"
	"github.com/carson-networks/finance-ledger/internal/logging"
)

// DateLayout is the wire format of every date.
const DateLayout = "2006-01-02"

// UserHeader identifies the acting user. Authentication happens upstream.
type UserHeader struct {
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Acting user id"`
}

// Error maps a service error to its HTTP status. Unclassified errors are
// logged and reported as 500 with msg.
func Error(ctx context.Context, err error, msg string) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, errs.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, errs.ErrConflict):
		return huma.Error409Conflict(err.Error())
	}
	logging.GetLogData(ctx).Log().WithError(err).Error(msg)
	return huma.Error500InternalServerError(msg)
}

func ParseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, huma.Error400BadRequest(fmt.Sprintf("invalid %s", field), err)
	}
	return amount, nil
}

// ParseOptionalAmount returns nil for an empty value.
func ParseOptionalAmount(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := ParseAmount(field, value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func ParseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest(fmt.Sprintf("invalid %s, expected YYYY-MM-DD", field), err)
	}
	return date, nil
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// OptionalID treats zero as absent. Database ids start at 1.
func OptionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
