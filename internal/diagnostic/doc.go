// Package diagnostic provides structured, per-record errors and warnings
// for the builder generator.
//
// Every failure is coded and attributed to the offending record and field,
// and one record's failure never blocks generation for its siblings: the
// pipeline records the diagnostic and moves on.
package diagnostic
