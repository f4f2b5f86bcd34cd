// Package pipeline analyzes many passwords concurrently.
//
// A BatchProcessor fans the input out to a bounded number of goroutines
// using errgroup and collects the results in input order. Each password is
// scored independently against the same frozen reference set.
package pipeline
