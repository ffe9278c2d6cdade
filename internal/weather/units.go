package weather

const (
	inHgPerHPa   = 0.02953
	inchesPerMM  = 0.03937
	compassSlice = 360.0 / 16
)

// HPaToInHg converts hectopascals to inches of mercury.
func HPaToInHg(hpa float64) float64 {
	return hpa * inHgPerHPa
}

// InHgToHPa is the inverse of HPaToInHg.
func InHgToHPa(inHg float64) float64 {
	return inHg / inHgPerHPa
}

// MMToInches converts a precipitation depth in millimetres to inches.
func MMToInches(mm float64) float64 {
	return mm * inchesPerMM
}

// InchesToMM is the inverse of MMToInches.
func InchesToMM(in float64) float64 {
	return in / inchesPerMM
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindCardinal maps a wind direction in degrees to one of 16 compass points.
func WindCardinal(deg float64) string {
	// normalise into [0, 360)
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	idx := int((deg+compassSlice/2)/compassSlice) % len(compassPoints)
	return compassPoints[idx]
}

// conditionFromMain normalizes an OpenWeatherMap "main" group name.
func conditionFromMain(main string) Condition {
	switch main {
	case "":
		return ConditionUnknown
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm", "Squall", "Tornado":
		return ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke", "Dust", "Sand", "Ash":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}
