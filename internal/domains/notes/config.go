package notes

// Config carries the notes collaborator's tunables.
type Config struct {
	Index string
}

func DefaultConfig() *Config {
	return &Config{
		Index: "assistant-notes",
	}
}
