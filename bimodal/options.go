package bimodal

//Options contains the parameters of the mixture fits and of the
//Bayes factor decision.
type Options struct {
	confidence float64 //percent
	maxIter    int
	tol        float64
	regCovar   float64
	seed       int64
	restarts   int
}

//DefaultOptions returns the usual options: 5% confidence level, at most 400
//EM iterations, a 1e-5 tolerance on the mean log-likelihood, 1e-6 added to
//every variance, seed 1 and no random restarts.
func DefaultOptions() *Options {
	r := new(Options)
	r.confidence = 5.0
	r.maxIter = 400
	r.tol = 1e-5
	r.regCovar = 1e-6
	r.seed = 1
	r.restarts = 0
	return r
}

//Returns the confidence level, in percent, for the Bayes factor decision,
//and sets it to a new value, if given.
func (O *Options) ConfidenceLevel(c ...float64) float64 {
	if len(c) > 0 && c[0] > 0 && c[0] < 50 {
		O.confidence = c[0]
	}
	return O.confidence
}

//Returns the maximum number of EM iterations,
//and sets it to a new value, if given.
func (O *Options) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxIter = n[0]
	}
	return O.maxIter
}

//Returns the convergence threshold on the change of the mean log-likelihood,
//and sets it to a new value, if given.
func (O *Options) Tol(t ...float64) float64 {
	if len(t) > 0 && t[0] > 0 {
		O.tol = t[0]
	}
	return O.tol
}

//Returns the value added to the variances at each step,
//and sets it to a new value, if given.
func (O *Options) RegCovar(r ...float64) float64 {
	if len(r) > 0 && r[0] >= 0 {
		O.regCovar = r[0]
	}
	return O.regCovar
}

//Returns the seed for the random restarts,
//and sets it to a new value, if given.
func (O *Options) Seed(s ...int64) int64 {
	if len(s) > 0 {
		O.seed = s[0]
	}
	return O.seed
}

//Returns the number of randomly initialized fits tried
//in addition to the deterministic one, and sets it to a new value, if given.
func (O *Options) Restarts(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.restarts = n[0]
	}
	return O.restarts
}
