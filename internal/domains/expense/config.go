package expense

// Config carries the expense collaborator's tunables.
type Config struct {
	Currency string
}

func DefaultConfig() *Config {
	return &Config{
		Currency: "USD",
	}
}
