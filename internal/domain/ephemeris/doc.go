// Package ephemeris computes tropical and Lahiri sidereal positions of the
// Sun, Moon, the five classical planets, the mean lunar nodes and the
// ascendant from closed-form and truncated-series formulas.
//
// Every function is a pure mapping from numbers to numbers. Nothing is
// cached and no state is shared, so ComputeChart may be called from any
// number of goroutines. Accuracy is at the arc-minute level of classical
// almanac formulas; refraction, parallax and light-time are not modelled.
package ephemeris
