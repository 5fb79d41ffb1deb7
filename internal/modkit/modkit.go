// Package modkit provides module wiring and the dependencies modules share
package modkit

import (
	"time"

	"babyfood/internal/modkit/repokit"
	"babyfood/internal/platform/config"
	"babyfood/internal/platform/logger"
	"babyfood/internal/platform/net/middleware"
	"babyfood/internal/platform/store"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG runs every transaction tagged with the request actor
	PG repokit.TxRunner

	// CH is nil when clickhouse is not configured
	CH store.Clickhouse

	// Auth verifies bearer tokens; nil lets requests through unauthenticated
	Auth middleware.AuthPort

	// Zone is the fallback calendar zone for babies without one
	Zone *time.Location

	// Now is swapped in tests
	Now func() time.Time
}

// Clock returns Now, or time.Now when unset
func (d Deps) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Location returns Zone, or UTC when unset
func (d Deps) Location() *time.Location {
	if d.Zone == nil {
		return time.UTC
	}
	return d.Zone
}
