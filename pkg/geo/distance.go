package geo

import "math"

// earthRadiusM is the mean earth radius used by the Haversine formula.
const earthRadiusM = 6371000.0

// Distance returns the great-circle distance in meters between two
// coordinates using the Haversine formula. It is pure and symmetric;
// callers are responsible for passing valid latitude/longitude ranges.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180.0
	rLon1 := lon1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0
	rLon2 := lon2 * math.Pi / 180.0

	dLat := rLat2 - rLat1
	dLon := rLon2 - rLon1

	hSin := math.Sin(dLat / 2)
	hSin *= hSin

	vSin := math.Sin(dLon / 2)
	vSin *= vSin

	h := hSin + math.Cos(rLat1)*math.Cos(rLat2)*vSin

	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}
