//go:build tinygo

package platform

import "time"

const bootDelay = 2 * time.Second
