package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
	RegisterCustomValidations(validate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Violation is a single failed rule, named by the field's JSON name.
type Violation struct {
	Field   string
	Message string
}

// Violations runs the struct rules of s and returns every failing field in
// declaration order. Errors that are not rule failures are returned as is.
func Violations(s interface{}) ([]Violation, error) {
	return violations(ValidateStruct(s))
}

// PartialViolations is Violations restricted to the named struct fields.
func PartialViolations(s interface{}, fields ...string) ([]Violation, error) {
	return violations(validate.StructPartial(s, fields...))
}

func violations(err error) ([]Violation, error) {
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fe.Field(), Message: Message(fe)})
	}
	return out, nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
