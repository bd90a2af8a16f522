package actorsys

import "github.com/btcsuite/btclog/v2"

var log = btclog.Disabled

// UseLogger installs the logger used by this package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
