// Package main provides the entry point for the pwaffinity CLI.
//
// pwaffinity measures how structurally close a password is to a set of
// reference passwords. Each password is reduced to a character-class
// fingerprint and scored by its minimal Euclidean distance to the reference
// centers; a small distance means the password follows a well-known pattern.
//
// Usage:
//
//	pwaffinity check <password>
//	pwaffinity check --list <file>
//	pwaffinity centers build -o cluster_centers.csv
//
// See --help for all available options.
package main

// main is the entry point for pwaffinity.
func main() {
	Execute()
}
