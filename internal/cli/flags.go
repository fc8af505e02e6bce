package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Language     string
	Context      string
	OutputPath   string
	ProgressPath string
	ListModels   bool
	Quiet        bool

	// Provider flags
	Provider   string
	Model      string
	MaxRetries int
	Timeout    time.Duration

	// Translation memory flags
	NoCache   bool
	CachePath string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Language:   "Portuguese (Brazil)",
		Provider:   "openai",
		MaxRetries: 3,
		Timeout:    60 * time.Second,
	}
}
