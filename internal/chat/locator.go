// ABOUTME: Locator supplies the user's position for hospital search and emergencies
// ABOUTME: Lookups are bounded by the caller's context; absence is a typed error

package chat

import (
	"context"
	"errors"
)

// ErrNoLocation is returned when no position can be determined.
var ErrNoLocation = errors.New("no location available")

// Position is a latitude/longitude pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the user's current position. Implementations must
// honor ctx cancellation; callers bound the wait with a deadline.
type Locator interface {
	Position(ctx context.Context) (Position, error)
}

// FixedLocator returns a configured position. The zero position means
// no location was configured and resolves to ErrNoLocation.
type FixedLocator struct {
	Pos Position
}

func (f FixedLocator) Position(ctx context.Context) (Position, error) {
	if f.Pos == (Position{}) {
		return Position{}, ErrNoLocation
	}
	return f.Pos, nil
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) Position(ctx context.Context) (Position, error) {
	return f(ctx)
}
