// SPDX-License-Identifier: MIT
package analysis

import "math"

// RMS returns the root mean square level of the block in [0,1].
// Used for the input level readout, not for recognition.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumSquare float64
	for _, s := range samples {
		f := float64(s)
		sumSquare += f * f
	}

	return math.Sqrt(sumSquare / float64(len(samples)))
}
