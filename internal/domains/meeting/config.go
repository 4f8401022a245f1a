package meeting

// Config carries the meeting collaborator's tunables.
type Config struct {
	DefaultDurationMinutes int
}

func DefaultConfig() *Config {
	return &Config{
		DefaultDurationMinutes: 30,
	}
}
