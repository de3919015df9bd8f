package migrations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/altocrm/altocrm/config"
)

// ParseVersion parses version string like "v1.4" or "1.4" and returns major version
func ParseVersion(versionStr string) (float64, error) {
	// Remove 'v' prefix if present
	cleanVersion := strings.TrimPrefix(versionStr, "v")

	// Split by dot to get major.minor
	parts := strings.Split(cleanVersion, ".")
	if len(parts) == 0 {
		return 0, fmt.Errorf("invalid version format: %s", versionStr)
	}

	// Parse major version
	major, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid major version: %s", parts[0])
	}

	return major, nil
}

// GetCurrentCodeVersion returns the major version from config.VERSION
func GetCurrentCodeVersion() (float64, error) {
	return ParseVersion(config.VERSION)
}
