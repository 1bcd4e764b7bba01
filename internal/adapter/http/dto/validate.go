package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/iho/gamewallet/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared request validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("resulttype", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseResultType(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Validate checks req against its validate tags. The returned error wraps
// domain.ErrInvalidRequest and names the failing fields.
func Validate(req any) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, strings.Join(fields, ", "))
}
