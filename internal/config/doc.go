// Package config provides configuration structures and utilities for
// pwaffinity. It defines where reference centers and history are stored,
// how passwords are analyzed in batches and which report format is used.
package config
