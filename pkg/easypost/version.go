package easypost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// APIVersion selects the API surface a client and its parameter sets target.
type APIVersion string

const (
	// V2 is the legacy GA surface.
	V2 APIVersion = "v2"

	// Beta is the beta surface. It is served from a different prefix.
	Beta APIVersion = "beta"

	// Latest is the current GA surface.
	Latest APIVersion = "latest"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedAPIVersion = errors.New("operation is not supported by this API version")
	ErrUnknownAPIVersion     = errors.New("unknown API version")
)

// AllVersions lists every known API version.
func AllVersions() []APIVersion {
	return []APIVersion{V2, Beta, Latest}
}

// ParseAPIVersion parses a version name, case-insensitively.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch APIVersion(strings.ToLower(strings.TrimSpace(s))) {
	case V2:
		return V2, nil
	case Beta:
		return Beta, nil
	case Latest, "":
		return Latest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAPIVersion, s)
	}
}

// PathPrefix returns the path prefix a version is served under.
func (v APIVersion) PathPrefix() string {
	if v == Beta {
		return constants.PathPrefixBeta
	}

	return constants.PathPrefixV2
}

// String implements fmt.Stringer.
func (v APIVersion) String() string {
	return string(v)
}

// In reports whether v is one of versions.
func (v APIVersion) In(versions ...APIVersion) bool {
	for _, candidate := range versions {
		if candidate == v {
			return true
		}
	}

	return false
}

// UnsupportedVersionError builds the error returned when an operation is invoked on a
// client bound to a version that does not offer it.
func UnsupportedVersionError(operation string, version APIVersion) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedAPIVersion, operation, version)
}
