package ratelimit

import "errors"

// ErrNonPositiveQPS is returned on an Upsert reply channel when QPS <= 0.
var ErrNonPositiveQPS = errors.New("ratelimit: qps must be positive")

const (
	// defaultQPS and defaultBurst are the parameters a bucket is lazily
	// created with when Acquire names a key that was never Upsert-ed.
	defaultQPS   = 1.0
	defaultBurst = 1
)
