package utils

import "github.com/spf13/viper"

// IsProduction reports whether the service runs with ENV=production.
// Reads viper directly to avoid an import cycle with the config package.
func IsProduction() bool {
	return viper.GetString("ENV") == "production"
}
