// Package babiestest provides fakes of the babies ports for other modules' tests
package babiestest

import (
	"context"
	"time"

	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/babies/domain"
)

// Access grants each listed user its role on every baby; anyone else is a stranger
type Access map[string]domain.Role

// Require mirrors the babies service: strangers get NotFound, weaker roles Forbidden
func (a Access) Require(_ context.Context, _, userID string, min domain.Role) (domain.Role, error) {
	if userID == "" {
		return "", perr.Unauthorizedf("authentication required")
	}
	r, ok := a[userID]
	if !ok {
		return "", perr.NotFoundf("baby not found")
	}
	if !r.Covers(min) {
		return r, perr.Forbiddenf("requires %s role", min)
	}
	return r, nil
}

// Zones maps baby ids to zones; unknown babies have none
type Zones map[string]*time.Location

// Zone returns the mapped zone or nil
func (z Zones) Zone(_ context.Context, babyID string) (*time.Location, error) {
	return z[babyID], nil
}
