package keys

import (
	"strings"
)

const (
	// PfxRoyalty is used for prefixing royalty lookup cache keys
	PfxRoyalty = "royalty"
	// PfxMarketplaceSettings is used for prefixing marketplace settings cache keys
	PfxMarketplaceSettings = "marketplaceSettings"
	// PfxHealthCheck is used for prefixing health check probe keys
	PfxHealthCheck = "healthCheck"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by components
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}
