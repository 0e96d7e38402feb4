package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Binding tags registered on the request validator.
const (
	TagUsername      = "username"
	TagNotFutureYear = "notfutureyear"
	TagScore         = "score"
	TagRole          = "role"
	TagSlug          = "slug"
)

var registerOnce sync.Once

// RegisterBindingValidators installs the custom tags on gin's validator
// engine and switches field names in errors to their json names.
// Safe to call more than once.
func RegisterBindingValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("binding validator engine is not go-playground/validator")
			return
		}
		err = Register(v)
	})
	return err
}

// Register adds the custom tags to v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		TagUsername: func(fl validator.FieldLevel) bool {
			return ValidateUsername(fl.Field().String()) == nil
		},
		TagNotFutureYear: func(fl validator.FieldLevel) bool {
			return ValidateYear(int(fl.Field().Int())) == nil
		},
		TagScore: func(fl validator.FieldLevel) bool {
			return ValidateScore(int(fl.Field().Int())) == nil
		},
		TagRole: func(fl validator.FieldLevel) bool {
			return ValidateRole(fl.Field().String()) == nil
		},
		TagSlug: func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FieldErrors turns a binding error into field -> message pairs.
// It returns nil when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case TagUsername:
		return ErrInvalidUsername.Error()
	case TagNotFutureYear:
		return ErrInvalidYear.Error()
	case TagScore:
		return ErrInvalidScore.Error()
	case TagRole:
		return ErrInvalidRole.Error()
	case TagSlug:
		return "slug may contain only letters, digits, hyphens and underscores"
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
