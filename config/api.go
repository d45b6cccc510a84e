package config

// GetAuthSkipperPaths lists routes served without authentication.
func GetAuthSkipperPaths() []string {
	return []string{"/health", "/metrics"}
}
