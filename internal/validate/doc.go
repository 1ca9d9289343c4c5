// Package validate checks that audit result files hold well-formed JSON.
//
// Dir parses every *.json file of a directory concurrently and returns one
// Result per file in name order, so output is stable however the work was
// scheduled.
package validate
