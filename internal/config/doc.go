// Package config loads the server configuration from a .env file, PMS_*
// environment variables, and an optional config.yaml, then validates it.
// Storage settings decide which record store backend the server opens.
package config
