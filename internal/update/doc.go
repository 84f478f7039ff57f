// Package update asks a version registry whether a package has a newer release.
//
// The package includes:
//   - Version parsing and precedence rules (version.go)
//   - The registry client that sends one PUT per check (check.go)
//   - Result formatting with relative release dates (result.go)
//
// Checks never fail loudly: transport errors, bad responses and unparseable
// versions all read as "no update available". Use Checker.Query to see why.
package update
