package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultCorpusDir is the conventional corpus root relative to the
	// working directory.
	DefaultCorpusDir = "template-builder"

	// BuiltinSource is the sync source label for the embedded starter corpus.
	BuiltinSource = "builtin"
)
