package skew

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// lambda search interval and convergence tolerance for the MLE fit.
const (
	lambdaMin = -5.0
	lambdaMax = 5.0
	lambdaTol = 1e-7
)

// boxcox applies the Box-Cox transform with parameter lambda to a single
// strictly positive value.
func boxcox(x, lambda float64) float64 {
	if math.Abs(lambda) < 1e-8 {
		return math.Log(x)
	}
	return (math.Pow(x, lambda) - 1) / lambda
}

// fitLambda finds the lambda maximizing the Box-Cox profile
// log-likelihood by golden-section search. The likelihood is unimodal in
// lambda, so the search converges to the maximum.
func fitLambda(x []float64) float64 {
	invPhi := (math.Sqrt(5) - 1) / 2

	a, b := lambdaMin, lambdaMax
	c1 := b - invPhi*(b-a)
	c2 := a + invPhi*(b-a)
	f1 := logLikelihood(x, c1)
	f2 := logLikelihood(x, c2)

	for b-a > lambdaTol {
		if f1 > f2 {
			b = c2
			c2, f2 = c1, f1
			c1 = b - invPhi*(b-a)
			f1 = logLikelihood(x, c1)
		} else {
			a = c1
			c1, f1 = c2, f2
			c2 = a + invPhi*(b-a)
			f2 = logLikelihood(x, c2)
		}
	}
	return (a + b) / 2
}

// logLikelihood is the Box-Cox profile log-likelihood:
// -n/2 * ln(sigma^2(z)) + (lambda-1) * sum(ln x), with sigma^2 the
// maximum-likelihood variance of the transformed sample.
func logLikelihood(x []float64, lambda float64) float64 {
	n := float64(len(x))
	z := make([]float64, len(x))
	var sumLog float64
	for i, v := range x {
		z[i] = boxcox(v, lambda)
		sumLog += math.Log(v)
	}

	variance := stat.Variance(z, nil) * (n - 1) / n
	if variance <= 0 || math.IsNaN(variance) {
		return math.Inf(-1)
	}
	return -0.5*n*math.Log(variance) + (lambda-1)*sumLog
}
