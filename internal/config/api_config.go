package config

import "time"

const (
	apiURLVar  = "PORTAL_API_URL"
	timeoutVar = "PORTAL_API_TIMEOUT"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the base URL of the portal backend
// (e.g., "https://api.portal.example.com/api/v1")
func (API) GetAPIBaseURL() string {
	return GetEnv(apiURLVar, "http://localhost:8080/api/v1")
}

func (API) GetRequestTimeout() time.Duration {
	raw := GetEnv(timeoutVar, "")
	if raw == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Second
	}
	return d
}
