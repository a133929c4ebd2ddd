package usecasecontract

// IValidator validates request payloads. Failures are reported as *domainerrors.ValidationError.
type IValidator interface {
	ValidateStruct(s interface{}) error
	ValidateEmail(email string) error
	ValidatePhone(phone string) error
	ValidatePassword(password string) error
}
