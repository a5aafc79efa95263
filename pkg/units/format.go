// Package units formats airport measurements for display.
package units

import (
	"fmt"
	"math"
	"strconv"
)

// Elevation renders feet with a thousands separator, e.g. "5,268 ft".
func Elevation(feet int) string {
	negative := feet < 0
	n := feet
	if negative {
		n = -n
	}

	result := addThousandsSeparator(strconv.Itoa(n), ",") + " ft"
	if negative {
		result = "-" + result
	}
	return result
}

// Meters converts feet to whole meters.
func Meters(feet int) int {
	return int(math.Round(float64(feet) * 0.3048))
}

// Coordinate renders a latitude/longitude pair with hemisphere letters, e.g. "59.9492°N 151.6960°W".
func Coordinate(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
