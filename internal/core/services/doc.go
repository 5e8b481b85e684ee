// Package services implements the driving port interfaces.
// Services contain the core pipeline logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. The only external import is
// github.com/google/uuid for dataset IDs.
package services
