// Package plotting renders diagnostic charts for the analysis pipeline
// as PNG files: column histograms, missing-value comparisons, correlation
// heat maps and before/after skew comparisons.
package plotting
