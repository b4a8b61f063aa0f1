package keys

import (
	"strings"
)

const (
	// PfxENS is used for prefixing ens resolution cache keys
	PfxENS = "ens"
	// PfxHealthCheck is used for health check probes
	PfxHealthCheck = "healthcheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}
