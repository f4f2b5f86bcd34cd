// Package model defines the data structures shared by the analysis,
// reporting and history packages.
//
// This package contains the following main types:
//   - Analysis: the result of scoring one password
//   - Report: a batch of analyses together with the reference set used
//   - Summary: distance statistics over a report
//
// Passwords never appear in these types verbatim unless the caller asks for
// them to be revealed; Label carries a masked form by default.
package model
