package config

import (
	"os"
	"strconv"
)

// IsDebug reports whether INSPIRE_DEBUG holds a true boolean ("1", "true").
// It is read before the .env file and the full config are loaded.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("INSPIRE_DEBUG"))
	return debug
}
