// Package fingerprint maps a password onto a fixed-length vector of
// character-class codes.
//
// Every position of the first Length characters is classified into one of
// seven categories. Frequent letters (e, s, a, i, t, n, r, u, o, l and their
// uppercase forms) and a small set of common symbols get their own codes so
// that structurally similar passwords land close to each other:
//
//	code 1  frequent lowercase letter
//	code 2  other lowercase letter
//	code 3  frequent uppercase letter
//	code 4  other uppercase letter
//	code 5  decimal digit
//	code 6  common symbol (> < - ? . / ! % @ &)
//	code 7  anything else
//
// Positions past the end of the password hold code 0. Characters after
// position Length-1 are ignored.
//
// # Usage
//
//	fp := fingerprint.Of("P@ssw0rd!")
//	fmt.Println(fp) // 4611251260000000000000000000
package fingerprint
