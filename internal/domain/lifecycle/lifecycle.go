// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup checks and graceful shutdown of managed
// resources (database ping, HTTP server drain, publisher close).
const DefaultTimeout = 10 * time.Second
