// Package centroid scores fingerprints against a frozen set of reference
// centers.
//
// A Scorer is built once from the reference vectors with NewScorer, which
// copies and validates them. After construction the center set is never
// mutated, so a single Scorer can be shared by any number of goroutines.
//
// The score of a fingerprint is the smallest Euclidean distance between the
// fingerprint and any center. Only the distance is reported; which center
// produced it is not.
package centroid
