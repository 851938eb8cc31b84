package geohash

import (
	"math"

	"github.com/bastiangx/wordmatch/internal/utils"
)

const (
	// EarthRadiusKm is the sphere radius used by Distance and BoundingBox.
	EarthRadiusKm = 6378.1

	// degreesToRadians is slightly below pi/180. Changing it moves every
	// computed distance.
	degreesToRadians = 0.01745327
)

// Distance returns the great-circle distance in kilometers between two
// points using the spherical law of cosines.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degreesToRadians
	phi2 := lat2 * degreesToRadians
	dLon := (lon2 - lon1) * degreesToRadians
	c := math.Sin(phi1)*math.Sin(phi2) + math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLon)
	// rounding can push identical points just past 1
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * EarthRadiusKm
}

// DistanceStrings parses the four coordinates leniently and returns their
// Distance. A coordinate that parses to 0 is accepted only if its text
// starts like a number; otherwise the call reports false.
func DistanceStrings(lat1, lon1, lat2, lon2 string) (float64, bool) {
	var v [4]float64
	for i, s := range [4]string{lat1, lon1, lat2, lon2} {
		f := utils.ParseLeadingFloat(s)
		if f == 0 && !utils.LooksNumeric(s) {
			return 0, false
		}
		v[i] = f
	}
	return Distance(v[0], v[1], v[2], v[3]), true
}

// BoundingBox returns the box reaching km kilometers north, east, south and
// west of the point, using the destination point formula on each bearing.
func BoundingBox(lat, lon, km float64) Box {
	north, _ := destination(lat, lon, 0, km)
	_, east := destination(lat, lon, 90, km)
	south, _ := destination(lat, lon, 180, km)
	_, west := destination(lat, lon, 270, km)
	return Box{LatMin: south, LatMax: north, LonMin: west, LonMax: east}
}

// destination returns the point reached from lat/lon travelling km along bearing.
func destination(lat, lon, bearing, km float64) (float64, float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	theta := bearing * math.Pi / 180
	delta := km / EarthRadiusKm

	phi2 := math.Asin(math.Sin(phi)*math.Cos(delta) + math.Cos(phi)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi),
		math.Cos(delta)-math.Sin(phi)*math.Sin(phi2),
	)
	// normalize to [-180, 180)
	lon2 := math.Mod(lambda2*180/math.Pi+540, 360) - 180
	return phi2 * 180 / math.Pi, lon2
}
