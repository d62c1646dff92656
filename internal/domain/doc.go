// Package domain holds the climate-risk core: the synthetic daily series
// generator, composite risk derivation, risk-level bucketing, and the region,
// lake, trend, and report types the rest of the service is built from.
//
// Everything here is synchronous and free of I/O. The only side effect is
// consuming randomness from a RandomSource, so callers that need reproducible
// output pass a SeededSource or FixedSource instead of DefaultSource.
package domain
