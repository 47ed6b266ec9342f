// Package config loads the application configuration from environment
// variables with an optional YAML file layered on top. The merged result
// is validated before use; database credentials live here so the batch
// tools never embed them.
package config
