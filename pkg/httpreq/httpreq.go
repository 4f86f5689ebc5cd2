// Package httpreq decodes and validates inbound HTTP requests.
package httpreq

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tair/pos-backoffice/pkg/apperr"
)

// DateLayout is the calendar day format used in query strings
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the body into dst and validates its `validate` tags
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.InvalidInput("invalid request body")
	}
	return Validate(dst)
}

// Validate runs struct validation and converts failures to InvalidInput
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.InvalidInput("invalid request: %v", err)
	}

	details := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, fmt.Sprintf("%s: %s", e.Field(), message(e)))
	}
	return apperr.InvalidInput("%s", strings.Join(details, "; "))
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String || e.Kind() == reflect.Slice {
			return "must have at least " + e.Param() + " entries"
		}
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// PathID parses a positive integer route variable
func PathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.InvalidInput("invalid %s", name)
	}
	return uint(id), nil
}

// Pagination reads limit and offset; bounds are applied by the query handlers
func Pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// Date parses a required YYYY-MM-DD query parameter as a UTC day
func Date(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, apperr.InvalidInput("%s is required", name)
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperr.InvalidInput("%s must be formatted as %s", name, DateLayout)
	}
	return t, nil
}
