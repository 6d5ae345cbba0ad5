package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"utmkit/apperrors"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	// report fields by their form name so messages match the request fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("weburl", func(fl playground.FieldLevel) bool {
		return URL(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("isodate", func(fl playground.FieldLevel) bool {
		return Date(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// URL reports whether raw has both a scheme and a host.
func URL(raw string) bool {
	// url.Parse reports malformed input as *url.Error; nothing else is expected
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Date reports whether text is exactly YYYY-MM-DD and names a real day.
func Date(text string) bool {
	if !datePattern.MatchString(text) {
		return false
	}
	_, err := time.Parse(DateLayout, text)
	return err == nil
}

// Struct validates s against its `validate` tags and returns the first
// failure as an apperrors error.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.MissingField(fe.Field())
	case "weburl":
		return apperrors.InvalidURL(fe.Field())
	case "isodate":
		return apperrors.InvalidDate(fe.Field())
	default:
		return &apperrors.Error{
			Kind:    apperrors.ErrMissingField,
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is invalid", fe.Field()),
		}
	}
}
