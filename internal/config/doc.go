// Package config loads and validates service settings from defaults, an
// optional config.yaml and ONSITE_ prefixed environment variables.
package config
