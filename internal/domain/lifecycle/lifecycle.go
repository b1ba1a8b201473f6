// Package lifecycle holds shared start/stop constants for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds OnStart/OnStop work such as server shutdown.
const DefaultTimeout = 10 * time.Second
