// Package config loads and validates application settings from config
// files and TASKNEST_-prefixed environment variables, giving the rest of
// the application type-safe access to them.
package config
