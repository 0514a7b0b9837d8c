package tenants

// Tenant represents the organizational grouping an identity may belong to.
// Tenants are consumed from backend payloads, never managed by this client.
type Tenant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"` // Tenant subdomain (e.g., "acme" for acme.portal.example.com)
	Plan   string `json:"plan,omitempty"`   // Subscription plan identifier
}
