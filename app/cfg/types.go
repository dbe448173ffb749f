package cfg

type Cfg struct {
	// Output configuration
	OutputDir     string
	SourcesFile   string
	SchemaPath    string
	Compression   string
	BrotliCommand string

	// Run configuration
	FetchTimeout int // seconds
	Only         []string
	DBPath       string

	// Server configuration
	Serve bool
	Port  string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

const (
	CompressionNative  = "native"
	CompressionCommand = "command"
)

// Selected reports whether the named icon set should run.
// An empty selection runs every set.
func (c *Cfg) Selected(set string) bool {
	if len(c.Only) == 0 {
		return true
	}
	for _, name := range c.Only {
		if name == set {
			return true
		}
	}
	return false
}
