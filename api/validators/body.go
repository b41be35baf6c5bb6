package validators

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	usernamePattern   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	couponCodePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// Decimals validate through their float value so the numeric bound tags
	// (gte/lte) apply to price and discount fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch value := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := value.Float64()
			return f
		case *decimal.Decimal:
			if value == nil {
				return nil
			}
			f, _ := value.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, &decimal.Decimal{})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("couponcode", func(fl validator.FieldLevel) bool {
		return couponCodePattern.MatchString(fl.Field().String())
	})

	return v
}

// DecodeJSONBody decodes the request body into dst and validates it,
// collecting every rule violation so the client sees the full list at once.
func DecodeJSONBody(r *http.Request, dst any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(errors.CodeInvalidRequest, err, "decoding request body").
			WithDetails([]string{"body must be valid JSON"})
	}

	return Validate(dst)
}

// Validate runs the struct rules against an already-decoded value.
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return errors.Wrap(errors.CodeInternal, err, "running validation")
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, violationMessage(fe))
	}
	sort.Strings(details)

	return errors.New(errors.CodeInvalidRequest, "request body failed validation").
		WithDetails(details)
}

func violationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, numbers, and underscores", field)
	case "couponcode":
		return fmt.Sprintf("%s may only contain lowercase letters, numbers, and underscores", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}
