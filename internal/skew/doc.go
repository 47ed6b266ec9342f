// Package skew identifies numeric columns with asymmetric distributions
// and transforms them toward normality with log1p or a Box-Cox power
// transform. Skewness uses the adjusted Fisher-Pearson estimator on both
// sides of every before/after comparison.
package skew
