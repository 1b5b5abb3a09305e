package config

import (
	"os"
	"strings"
)

// GetAuthSkipperPaths returns the paths served without credentials: /health
// plus any listed in AUTH_SKIP_PATHS (comma separated).
func GetAuthSkipperPaths() []string {
	paths := []string{"/health"}
	for _, p := range strings.Split(os.Getenv("AUTH_SKIP_PATHS"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
