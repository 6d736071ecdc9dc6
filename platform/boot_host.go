//go:build !tinygo

package platform

const bootDelay = 0
