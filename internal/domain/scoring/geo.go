// Package scoring turns forecast error into points and applies them to
// stored predictions once a checkpoint closes.
package scoring

import "math"

// EarthRadiusNM is the mean Earth radius in nautical miles.
const EarthRadiusNM = 3440.065

const degToRad = math.Pi / 180

// Distance returns the great-circle distance in nautical miles between two
// points given in decimal degrees. Longitudes need not be normalized.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// float error can push a just outside [0,1] near antipodes
	a = math.Min(1, math.Max(0, a))

	return 2 * EarthRadiusNM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
