package types

import "fmt"

// Verbosity controla quanto diagnóstico não fatal a varredura reporta.
// O dump JSON é idêntico em qualquer nível.
type Verbosity int

const (
	// VerbosityQuiet suppresses all non-fatal fetch diagnostics.
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal logs unclassified fetch errors; regions denied by
	// authorization stay silent.
	VerbosityNormal
	// VerbosityDebug also logs denied regions and renders the post-scan
	// diagnostics table.
	VerbosityDebug
)

// ParseVerbosity converts a flag or config value into a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "", "normal":
		return VerbosityNormal, nil
	case "quiet":
		return VerbosityQuiet, nil
	case "debug":
		return VerbosityDebug, nil
	}
	return VerbosityNormal, fmt.Errorf("invalid verbosity %q (expected quiet, normal or debug)", s)
}

func (v Verbosity) String() string {
	switch v {
	case VerbosityQuiet:
		return "quiet"
	case VerbosityDebug:
		return "debug"
	default:
		return "normal"
	}
}
