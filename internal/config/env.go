// Package config provides configuration helpers for go-eyes commands.
package config

import (
	"os"
	"strconv"
)

// Default hardware wiring for the dual GC9A01 displays on a Raspberry Pi.
// Left eye sits on CE0, right eye on CE1; both share the SPI0 clock/data pair.
const (
	DefaultLeftSPI  = "/dev/spidev0.0"
	DefaultRightSPI = "/dev/spidev0.1"

	DefaultLeftDC   = "GPIO25"
	DefaultLeftRST  = "GPIO27"
	DefaultRightDC  = "GPIO24"
	DefaultRightRST = "GPIO23"
)

// Env returns the value of the named environment variable,
// falling back to def if not set.
func Env(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// EnvInt returns the named environment variable parsed as an int,
// falling back to def if unset or unparseable.
func EnvInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// LeftSPI returns the SPI device path for the left display.
func LeftSPI() string {
	return Env("EYES_LEFT_SPI", DefaultLeftSPI)
}

// RightSPI returns the SPI device path for the right display.
func RightSPI() string {
	return Env("EYES_RIGHT_SPI", DefaultRightSPI)
}

// CameraDevice returns the V4L2 camera device index.
func CameraDevice() int {
	return EnvInt("EYES_CAMERA", 0)
}
