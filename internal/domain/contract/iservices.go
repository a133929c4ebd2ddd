package contract

import "context"

// IHasher hashes and verifies passwords.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

// IUUIDGenerator produces document ids.
type IUUIDGenerator interface {
	NewUUID() string
}

// IRandomGenerator produces url-safe random tokens.
type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}

// IEmailService delivers plain text email.
type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}
