package simulate

import (
	"os"
)

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Stormcast Simulator
===================

Plays one round of the forecasting game against a running service.

Usage:
  go run ./cmd/simulate [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -users int
        Number of synthetic players (default 100)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -score
        Score the open checkpoint immediately through the admin endpoint
  -verbose
        Log every submission
  -help
        Show this help message

Examples:
  go run ./cmd/simulate -users 500 -workers 16
  go run ./cmd/simulate -score -url http://localhost:8080
`)
}
