package instance

import (
	"os"

	"github.com/scentvault/storefront-backend/pkg/env"
)

// ID names this process in logs. Platform-provided names win over the hostname.
func ID() string {
	if id, ok := env.First("SCENTVAULT_INSTANCE_ID", "DYNO", "K_REVISION"); ok {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
