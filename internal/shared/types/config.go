package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Regions     []string `json:"regions" yaml:"regions" toml:"regions"`
	Output      string   `json:"output" yaml:"output" toml:"output"`
	Verbosity   string   `json:"verbosity" yaml:"verbosity" toml:"verbosity"`
	Utilization bool     `json:"utilization" yaml:"utilization" toml:"utilization"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
}
