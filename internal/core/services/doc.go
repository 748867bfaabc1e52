// Package services implements the driving port interfaces.
// Services contain the client-side business logic - validation and
// request normalization - and orchestrate calls to driven ports.
//
// Services are pure Go with no external dependencies beyond the
// domain and port packages.
package services
