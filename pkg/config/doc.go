// Package config handles configuration management for waylandify.
// Configuration is read from a TOML file under the XDG config directory,
// layered over embedded defaults and WAYLANDIFY_ environment variables,
// then validated before any launcher is touched.
package config
