// Package validate wires go-playground/validator with English translations
// so request and input errors can be reported per field.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// Validator validates structs and translates the resulting field errors.
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// New returns a Validator using JSON tag names in error keys.
func New() *Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	v := validator.New()
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(v, trans, notBlankTag, notBlankText, false)
	registerTranslation(v, trans, requiredTag, requiredText, true)

	return &Validator{v: v, trans: trans}
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s. The returned error is a validator.ValidationErrors
// when field rules fail.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Fields flattens a validation error into field -> message. It returns nil
// for errors that did not come from field validation.
func (val *Validator) Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(val.trans)
	}
	return out
}

// Validate lets a Validator serve as an echo.Validator.
func (val *Validator) Validate(i interface{}) error {
	return val.Struct(i)
}
