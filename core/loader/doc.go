// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines its route
// registration logic:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. cmd/start registers lineitems, promoter,
// catalog, and integrity, then calls LoadAll once middleware is in place.
package loader
