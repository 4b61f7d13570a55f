package predict

import "math/rand"

// SampleEnvironment synthesizes environmental readings for a location. There
// is no live weather feed; readings are drawn from per-region ranges so that
// coastal south-Asian coordinates trend wetter and hotter than the default.
func SampleEnvironment(latitude, longitude float64) Sample {
	switch {
	case latitude >= 10 && latitude <= 15 && longitude >= 75 && longitude <= 85:
		return Sample{
			Rainfall:    randInRange(50, 150),
			Temperature: randInRange(25, 35),
			Humidity:    randInRange(70, 95),
		}
	case latitude >= 20 && latitude <= 25 && longitude >= 70 && longitude <= 80:
		return Sample{
			Rainfall:    randInRange(10, 80),
			Temperature: randInRange(30, 40),
			Humidity:    randInRange(50, 80),
		}
	default:
		return Sample{
			Rainfall:    randInRange(0, 100),
			Temperature: randInRange(20, 40),
			Humidity:    randInRange(40, 90),
		}
	}
}

func randInRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
