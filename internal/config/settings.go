package config

import "time"

// Defaults for Settings.
const (
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = "/app/keys/host_key"
	DefaultWebHost     = "0.0.0.0"
	DefaultWebPort     = "8080"
	DefaultDisplayHost = "your-server.com"
	DefaultLogLevel    = "info"
	DefaultIdleTimeout = 2 * time.Minute
)

// Settings is the process configuration read from the environment.
type Settings struct {
	SSHHost     string        // SSH_HOST
	SSHPort     string        // SSH_PORT
	HostKeyPath string        // SSH_HOST_KEY, empty to generate a key
	WebHost     string        // WEB_HOST
	WebPort     string        // WEB_PORT
	DisplayHost string        // SSH_DISPLAY_HOST, shown on the landing page
	Seed        int64         // GAME_SEED, 0 for a time-based seed
	Audio       bool          // GAME_AUDIO
	LogLevel    string        // LOG_LEVEL
	IdleTimeout time.Duration // SSH_IDLE_TIMEOUT, 0 disables
}

// Load reads Settings from the environment, applying defaults for unset or
// malformed values.
func Load() Settings {
	return Settings{
		SSHHost:     GetEnv("SSH_HOST", DefaultSSHHost),
		SSHPort:     GetEnv("SSH_PORT", DefaultSSHPort),
		HostKeyPath: GetEnv("SSH_HOST_KEY", DefaultHostKeyPath),
		WebHost:     GetEnv("WEB_HOST", DefaultWebHost),
		WebPort:     GetEnv("WEB_PORT", DefaultWebPort),
		DisplayHost: GetEnv("SSH_DISPLAY_HOST", DefaultDisplayHost),
		Seed:        GetEnvInt("GAME_SEED", 0),
		Audio:       GetEnvBool("GAME_AUDIO", true),
		LogLevel:    GetEnv("LOG_LEVEL", DefaultLogLevel),
		IdleTimeout: GetEnvDuration("SSH_IDLE_TIMEOUT", DefaultIdleTimeout),
	}
}
