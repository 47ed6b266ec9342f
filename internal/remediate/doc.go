// Package remediate implements threshold-driven missing-value repair:
// a per-column missingness report, and a policy that either imputes
// (median/mean for numeric columns, mode for everything else), removes the
// null rows, or drops columns whose missingness exceeds the threshold.
package remediate
