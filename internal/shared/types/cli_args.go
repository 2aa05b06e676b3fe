package types

// DefaultOutputFile is the JSON dump written at the end of every scan when
// no --output path is given.
const DefaultOutputFile = "aws_reservations_report.json"

// CLIArgs represents the command-line arguments. Verbosity carries the raw
// flag value so a config file can fill it when the flag was not passed.
type CLIArgs struct {
	ConfigFile  string
	Profile     string
	Regions     []string
	Output      string
	Verbosity   string
	Utilization bool
	ReportName  string
	ReportType  []string
	Dir         string
}
