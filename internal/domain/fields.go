package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormField describes one field of an intake form.
// The set of variants is closed: only types from this package implement it.
type FormField interface {
	FieldName() string
	isFormField()
}

// FieldBase common attributes of every field
type FieldBase struct {
	Name     string
	Label    string
	Required bool
}

func (b FieldBase) FieldName() string { return b.Name }

type TextField struct {
	FieldBase
	MaxLength int
}

type EmailField struct {
	FieldBase
}

type PhoneField struct {
	FieldBase
}

type TextAreaField struct {
	FieldBase
	MaxLength int
}

type SelectField struct {
	FieldBase
	Options []string
}

type CheckboxField struct {
	FieldBase
}

func (TextField) isFormField()     {}
func (EmailField) isFormField()    {}
func (PhoneField) isFormField()    {}
func (TextAreaField) isFormField() {}
func (SelectField) isFormField()   {}
func (CheckboxField) isFormField() {}

// separators allowed inside a phone number
var phoneFormatting = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()

	// phone: digits with separators, checked as E.164 once they are stripped
	err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		digits := phoneFormatting.Replace(fl.Field().String())
		if !strings.HasPrefix(digits, "+") {
			digits = "+" + digits
		}
		return v.Var(digits, "e164") == nil
	})
	if err != nil {
		panic(fmt.Sprintf("domain: register phone validation: %v", err))
	}

	return v
}

// ValidateField checks a raw submitted value against the field constraints
func ValidateField(field FormField, value string) error {
	value = strings.TrimSpace(value)
	name := field.FieldName()

	if value == "" {
		if isRequired(field) {
			return &FieldError{Field: name, Reason: "is required"}
		}
		return nil
	}

	switch f := field.(type) {
	case TextField:
		return checkVar(name, value, maxLengthTag(f.MaxLength))
	case TextAreaField:
		return checkVar(name, value, maxLengthTag(f.MaxLength))
	case EmailField:
		return checkVar(name, value, fmt.Sprintf("max=%d,email", MaxEmailLength))
	case PhoneField:
		return checkVar(name, value, fmt.Sprintf("max=%d,phone", MaxPhoneLength))
	case SelectField:
		if len(f.Options) == 0 {
			return &FieldError{Field: name, Reason: "has no options"}
		}
		return checkVar(name, value, oneOfTag(f.Options))
	case CheckboxField:
		if err := checkVar(name, value, "oneof=true false"); err != nil {
			return err
		}
		if f.Required && value != "true" {
			return &FieldError{Field: name, Reason: "must be checked"}
		}
		return nil
	default:
		panic(fmt.Sprintf("domain: unknown form field type %T", field))
	}
}

func isRequired(field FormField) bool {
	switch f := field.(type) {
	case TextField:
		return f.Required
	case EmailField:
		return f.Required
	case PhoneField:
		return f.Required
	case TextAreaField:
		return f.Required
	case SelectField:
		return f.Required
	case CheckboxField:
		return f.Required
	default:
		panic(fmt.Sprintf("domain: unknown form field type %T", field))
	}
}

// checkVar runs a validator tag against a single value and turns the first
// failed rule into a FieldError
func checkVar(name, value, tag string) error {
	if tag == "" {
		return nil
	}

	err := fieldValidator.Var(value, tag)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &FieldError{Field: name, Reason: "is invalid"}
	}

	fe := errs[0]
	switch fe.Tag() {
	case "max":
		return &FieldError{Field: name, Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "email":
		return &FieldError{Field: name, Reason: "is not a valid email address"}
	case "phone":
		return &FieldError{Field: name, Reason: "is not a valid phone number"}
	case "oneof":
		return &FieldError{Field: name, Reason: fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), "'", ""))}
	default:
		return &FieldError{Field: name, Reason: fmt.Sprintf("failed %s check", fe.Tag())}
	}
}

func maxLengthTag(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	return fmt.Sprintf("max=%d", maxLength)
}

// oneOfTag quotes every option; commas and pipes are escaped as the tag parser expects
func oneOfTag(options []string) string {
	escape := strings.NewReplacer(",", "0x2C", "|", "0x7C", "'", "")
	quoted := make([]string, 0, len(options))
	for _, o := range options {
		quoted = append(quoted, "'"+escape.Replace(o)+"'")
	}
	return "oneof=" + strings.Join(quoted, " ")
}

// Occupant form field names
const (
	FieldOccupantName  = "name"
	FieldOccupantEmail = "email"
	FieldOccupantPhone = "phone"
	FieldOccupantNote  = "note"
)

// OccupantForm describes the contact form a client fills in to reserve a window
func OccupantForm() []FormField {
	return []FormField{
		TextField{FieldBase: FieldBase{Name: FieldOccupantName, Label: "Name", Required: true}, MaxLength: MaxNameLength},
		EmailField{FieldBase: FieldBase{Name: FieldOccupantEmail, Label: "Email", Required: true}},
		PhoneField{FieldBase: FieldBase{Name: FieldOccupantPhone, Label: "Phone", Required: true}},
		TextAreaField{FieldBase: FieldBase{Name: FieldOccupantNote, Label: "Notes"}, MaxLength: MaxNoteLength},
	}
}

// ValidateOccupant applies OccupantForm to the occupant details
func ValidateOccupant(o Occupant) error {
	note := ""
	if o.Note != nil {
		note = *o.Note
	}
	values := map[string]string{
		FieldOccupantName:  o.Name,
		FieldOccupantEmail: o.Email,
		FieldOccupantPhone: o.Phone,
		FieldOccupantNote:  note,
	}

	for _, field := range OccupantForm() {
		if err := ValidateField(field, values[field.FieldName()]); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeOccupant trims whitespace and lowercases the email
func NormalizeOccupant(o Occupant) Occupant {
	o.Name = strings.TrimSpace(o.Name)
	o.Email = strings.ToLower(strings.TrimSpace(o.Email))
	o.Phone = strings.TrimSpace(o.Phone)
	if o.Note != nil {
		note := strings.TrimSpace(*o.Note)
		if note == "" {
			o.Note = nil
		} else {
			o.Note = &note
		}
	}
	return o
}
