package config

import "time"

// SSH server
const (
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = "/app/keys/host_key"
)

// HTTP server
const (
	DefaultWebHost = "0.0.0.0"
	DefaultWebPort = "8080"
	MaxSceneBytes  = 1 << 20 // Upper bound on a posted scene document
)

// Shared
const (
	DefaultScenePath = "scene.yaml"
	DefaultLogLevel  = "info"
	QueryTimeout     = 5 * time.Second // Per contact query
	ShutdownTimeout  = 5 * time.Second
)
