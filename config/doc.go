// Package config provides configuration loading and validation for
// applications built on restkit.
//
// It loads YAML files via Viper and layers environment variables on top,
// including variables from a .env file loaded with godotenv, so the
// environment always wins. Files are found in standard locations relative
// to the working directory, or passed explicitly via options.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("my-service", &cfg)
//
// Environment variables bind to nested keys automatically: AUTH_TOKEN_URL
// overrides auth.token_url without per-field binding.
package config
