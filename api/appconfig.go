package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// AppConfig is the public bootstrap configuration the dashboard shell reads
// before any session exists (branding, signup availability, billing flags).
type AppConfig struct {
	AppName           string `json:"app_name"`
	SupportEmail      string `json:"support_email,omitempty"`
	RegistrationOpen  bool   `json:"registration_open"`
	BillingEnabled    bool   `json:"billing_enabled"`
	DefaultTenantPlan string `json:"default_tenant_plan,omitempty"`
}

type appConfigEnvelope struct {
	Data struct {
		Config *AppConfig `json:"config"`
	} `json:"data"`
}

// AppConfig fetches the public application configuration. The endpoint is
// unauthenticated; failures are reported like any other backend error.
func (c *Client) AppConfig(ctx context.Context) (*AppConfig, error) {
	var envelope appConfigEnvelope
	if err := c.do(ctx, http.MethodGet, PathAppConfig, nil, &envelope); err != nil {
		return nil, errors.Wrap(err, "[Client.AppConfig]")
	}
	if envelope.Data.Config == nil {
		return nil, errors.New("[Client.AppConfig] response missing config")
	}
	return envelope.Data.Config, nil
}
