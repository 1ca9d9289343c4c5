// Package main provides the entry point for the auditreport CLI.
//
// auditreport turns the JSON result files of a Linux audit run into one
// consolidated report: a spreadsheet, a paginated PDF, Markdown or JSON.
//
// Usage:
//
//	auditreport render -i ./results
//	auditreport category service_clients_audit.json
//	auditreport validate ./results
//
// See --help for all available options.
package main

// main is the entry point for auditreport.
func main() {
	Execute()
}
