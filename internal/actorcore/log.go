package actorcore

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger used by the actor runtime. It defaults to
// a disabled logger so the package is silent until a caller installs one.
var log = btclog.Disabled

// UseLogger sets the logger used by this package. Daemons and tests should
// call this once at startup before spawning any actors.
func UseLogger(logger btclog.Logger) {
	log = logger
}
