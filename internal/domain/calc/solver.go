package calc

const (
	solverMaxIterations = 100
	solverTolerance     = 0.01 // one centavo
	// Net grows slower than gross (its derivative is below 1), so the
	// correction overshoots to speed convergence.
	solverOvershoot = 1.25
)

// GrossFromNet inverts Net by fixed-point iteration: no closed form exists
// for the piecewise withholding function. It returns its best estimate and
// whether it landed within tolerance; on iteration exhaustion the last
// estimate is returned with converged=false, never an error.
func (c *Calculator) GrossFromNet(targetNet float64) (gross float64, converged bool) {
	if targetNet <= 0 {
		return 0, true
	}

	gross = targetNet
	for i := 0; i < solverMaxIterations; i++ {
		net := c.Net(gross)
		diff := targetNet - net
		if diff < solverTolerance && diff > -solverTolerance {
			return gross, true
		}
		gross += diff * solverOvershoot
		if gross < 0 {
			gross = targetNet
		}
	}
	return gross, false
}
