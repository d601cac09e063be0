package configuration

type Configuration struct {
	File       string `usage:"backing file path (empty = per-user default under the temp dir)"`
	Global     bool   `usage:"deduplicate records across all processes sharing the store"`
	Columns    string `usage:"comma-separated column names for filter/export documents"`
	Ephemeral  bool   `usage:"destroy the store on exit"`
	ListNone   bool   `usage:"legacy mode: list prints nothing"`
	Verbose    bool   `usage:"debug logging"`
	NoColor    bool   `usage:"disable colored logging"`
	Version    bool   `usage:"show version and exit"`
	ShowConfig bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{}
}
