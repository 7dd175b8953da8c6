package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DepartementInput carries the writable fields of a département.
type DepartementInput struct {
	Code string  `json:"code" validate:"required,deptcode"`
	Nom  *string `json:"nom,omitempty" validate:"omitempty,min=2,max=100"`
}

// VilleInput carries the writable fields of a ville. The owner is given
// either by id or by code; the id wins when both are set.
type VilleInput struct {
	Nom             string `json:"nom" validate:"required,min=2,max=100"`
	NbHabitants     int    `json:"nbHabitants" validate:"required,min=1,max=50000000"`
	DepartementID   int64  `json:"departementId,omitempty" validate:"omitempty,min=1"`
	CodeDepartement string `json:"codeDepartement,omitempty" validate:"omitempty,max=3"`
}

// Normalize trims names and uppercases codes in place.
func (in *DepartementInput) Normalize() {
	in.Code = NormalizeCode(in.Code)
	if in.Nom != nil {
		in.Nom = StringPtr(strings.TrimSpace(*in.Nom))
	}
}

// Normalize trims the name and uppercases the département code in place.
func (in *VilleInput) Normalize() {
	in.Nom = strings.TrimSpace(in.Nom)
	in.CodeDepartement = NormalizeCode(in.CodeDepartement)
}

// NormalizeCode trims and uppercases a département code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCode reports whether code belongs to 01-19, 21-95, 2A, 2B or
// 971-978, after normalization.
func IsValidCode(code string) bool {
	code = NormalizeCode(code)
	if code == "2A" || code == "2B" {
		return true
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	switch len(code) {
	case 2:
		return n >= 1 && n <= 95 && n != 20
	case 3:
		return n >= 971 && n <= 978
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("deptcode", func(fl validator.FieldLevel) bool {
			return IsValidCode(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register deptcode validation: %v", err))
		}
		validate = v
	})
	return validate
}

// Validate checks the struct tags of s. Failures come back as a
// CONSTRAINT_VIOLATION error with one detail per field.
func Validate(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return InvalidData("validation impossible: %v", err)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = violationMessage(fe)
	}
	e := ConstraintViolation("Les données fournies ne respectent pas les contraintes")
	e.Details = details
	return e
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ obligatoire"
	case "deptcode":
		return fmt.Sprintf("code département invalide: %v", fe.Value())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("doit contenir au moins %s caractères", fe.Param())
		}
		return fmt.Sprintf("doit être supérieur ou égal à %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("doit contenir au plus %s caractères", fe.Param())
		}
		return fmt.Sprintf("doit être inférieur ou égal à %s", fe.Param())
	default:
		return fmt.Sprintf("contrainte %s non respectée", fe.Tag())
	}
}
