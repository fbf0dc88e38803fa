// Package constants provides shared constants used throughout the glossync
// codebase: timeouts, page sizes, retry bounds, and the wire names of the
// ownership markers exchanged with Apache Atlas.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to Atlas and Egeria
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRefreshInterval is used when no cron schedule is configured
	DefaultRefreshInterval = 5 * time.Minute

	// ShutdownTimeout bounds graceful shutdown of the HTTP control surface
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout bounds reading request headers on the control surface
	ReadHeaderTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// DefaultPageSize is the page size used when paging through Egeria and Atlas listings
	DefaultPageSize = 100

	// MaxPageSize is the largest page the Egeria exchange accepts by default
	MaxPageSize = 1000

	// MaxNameConflictRetries bounds the create-retry loop on Atlas name conflicts
	MaxNameConflictRetries = 25
)

// Ownership marker wire names. These keys are stored in the Atlas
// additionalAttributes map and in Egeria correlation records and must not change.
const (
	// EgeriaGUIDAttribute holds the GUID of the Egeria counterpart on an Atlas element
	EgeriaGUIDAttribute = "egeriaGUID"

	// EgeriaOwnedAttribute is true when Egeria is authoritative for an Atlas element
	EgeriaOwnedAttribute = "egeriaOwned"

	// AtlasGUIDIdentifierName names the Atlas GUID in Egeria external identifiers
	AtlasGUIDIdentifierName = "atlasGUID"
)

// Qualified name prefixes for Egeria copies of Atlas originals.
const (
	GlossaryQualifiedNamePrefix = "AtlasGlossary."
	CategoryQualifiedNamePrefix = "AtlasGlossaryCategory."
	TermQualifiedNamePrefix     = "AtlasGlossaryTerm."
)

// Connector defaults
const (
	// DefaultConnectorName identifies the connector in logs and errors
	DefaultConnectorName = "AtlasGlossarySync"

	// DefaultCollection is the Egeria metadata collection owned by this connector
	DefaultCollection = "Apache Atlas"

	// DefaultSchedule is the cron schedule for automatic refreshes
	DefaultSchedule = "@every 5m"

	// DefaultServerPort is the port of the HTTP control surface
	DefaultServerPort = 8080

	// DefaultPathPrefix is the route prefix of the HTTP control surface
	DefaultPathPrefix = "/api/v1"
)
