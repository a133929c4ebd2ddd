package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerCustom(v)
	return &AppValidator{validate: v}
}

var _ usecasecontract.IValidator = (*AppValidator)(nil)

// ValidateStruct runs the struct tags of s and reports failures per json field name.
func (av *AppValidator) ValidateStruct(s interface{}) error {
	return Translate(av.validate.Struct(s))
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePhone checks for exactly ten digits.
func (av *AppValidator) ValidatePhone(phone string) error {
	return av.validate.Var(phone, "required,phone10")
}

// ValidatePassword checks the minimum password length.
func (av *AppValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustom(v)
	}
}

func registerCustom(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("phone10", phone10)
	_ = v.RegisterValidation("quality_grade", qualityGrade)
	_ = v.RegisterValidation("farming_method", farmingMethod)
	_ = v.RegisterValidation("listing_status", listingStatus)
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

func phone10(fl validator.FieldLevel) bool {
	return entity.IsTenDigitPhone(fl.Field().String())
}

func qualityGrade(fl validator.FieldLevel) bool {
	return entity.QualityGrade(fl.Field().String()).Valid()
}

func farmingMethod(fl validator.FieldLevel) bool {
	return entity.FarmingMethod(fl.Field().String()).Valid()
}

func listingStatus(fl validator.FieldLevel) bool {
	return entity.ListingStatus(fl.Field().String()).Valid()
}

// Translate converts validator errors into a *domainerrors.ValidationError. Other errors pass through.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domainerrors.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out.OrNil()
}

// fieldPath drops the top level struct name from the namespace, e.g. "priceRange.min".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone10":
		return "must be a valid 10-digit phone number"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "quality_grade":
		return "must be one of A+, A, B, C"
	case "farming_method":
		return "must be one of Organic, Traditional, Mixed"
	case "listing_status":
		return "must be one of pending, approved, rejected"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
