// Package config loads the function and local-server settings from an
// optional healthprobe.yaml and the environment, and validates each section
// on demand.
package config
