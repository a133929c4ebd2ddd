package usecasecontract

import "time"

// IConfigProvider exposes the configuration values consumed outside main.
type IConfigProvider interface {
	GetAppEnv() string
	GetAppBaseURL() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetCookieSecure() bool
	GetListingCacheTTL() time.Duration
}
