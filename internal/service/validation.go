package service

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"fieldrep/internal/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidationErrors maps a draft field (its JSON name) to a message shown
// next to that field.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

var fieldLabels = map[string]string{
	"type":          "Type",
	"priority":      "Priority",
	"productId":     "Product",
	"quantity":      "Quantity",
	"hospitalName":  "Hospital name",
	"doctorName":    "Doctor name",
	"remarks":       "Remarks",
	"name":          "Name",
	"speciality":    "Speciality",
	"submitterName": "Submitted by",
	"phone":         "Phone",
	"email":         "Email",
	"address":       "Address",
	"city":          "City",
	"description":   "Description",
	"location":      "Location",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ = ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	mustRegister("posint", isPositiveInt, "{0} must be a whole number greater than zero")
	mustRegister("ordertype", inSet(model.ParseOrderType), "{0} must be one of: "+strings.Join(model.OrderTypes, ", "))
	mustRegister("doctortype", inSet(model.ParseDoctorType), "{0} must be one of: "+strings.Join(model.DoctorTypes, ", "))
	mustRegister("utilitytype", inSet(model.ParseUtilityType), "{0} must be one of: "+strings.Join(model.UtilityTypes, ", "))
	mustRegister("priority", inSet(model.ParsePriority), "{0} must be High, Medium or Low")

	// Field labels instead of raw JSON names in the common messages.
	mustTranslate("required", "{0} is required")
	mustTranslate("required_if", "{0} is required")
	mustTranslate("email", "{0} must be a valid email address")
}

func mustRegister(tag string, fn validator.Func, message string) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
	mustTranslate(tag, message)
}

func mustTranslate(tag, message string) {
	err := validate.RegisterTranslation(tag, trans, func(t ut.Translator) error {
		return t.Add(tag, message, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, label(fe.Field()))
		if err != nil {
			return fe.Error()
		}
		return msg
	})
	if err != nil {
		panic(err)
	}
}

func isPositiveInt(fl validator.FieldLevel) bool {
	n, err := parseQuantity(fl.Field().String())
	return err == nil && n > 0
}

func parseQuantity(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func inSet(parse func(string) (string, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v, ok := parse(fl.Field().String())
		return ok && v == fl.Field().String()
	}
}

// validateStruct runs the struct tags and returns one message per field.
func validateStruct(s any) ValidationErrors {
	out := ValidationErrors{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = fmt.Sprintf("invalid form: %v", err)
		return out
	}
	for _, fe := range verrs {
		field := fieldKey(fe)
		if _, seen := out[field]; !seen {
			out[field] = fe.Translate(trans)
		}
	}
	return out
}

// fieldKey drops the struct name prefix from the namespace so nested
// elements keep their index, e.g. "visualAids[1]".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}
