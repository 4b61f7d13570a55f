package predict

import (
	"testing"

	"disaster-response/internal/models"
)

func TestClassifierPredict(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name   string
		sample Sample
		want   models.RiskLevel
	}{
		{"dry and mild", Sample{Rainfall: 10, Temperature: 25, Humidity: 60}, models.RiskLow},
		{"near-zero readings", Sample{Rainfall: 0, Temperature: 15, Humidity: 40}, models.RiskLow},
		{"moderate monsoon", Sample{Rainfall: 50, Temperature: 30, Humidity: 80}, models.RiskMedium},
		{"heavy rain and humid", Sample{Rainfall: 100, Temperature: 35, Humidity: 90}, models.RiskHigh},
		{"extreme readings", Sample{Rainfall: 200, Temperature: 45, Humidity: 100}, models.RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Predict(tt.sample)
			if err != nil {
				t.Fatalf("Predict failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Predict(%+v) = %q, want %q", tt.sample, got, tt.want)
			}
		})
	}
}

func TestRandomPredictorStaysInClassSet(t *testing.T) {
	var p RandomPredictor
	for i := 0; i < 100; i++ {
		risk, err := p.Predict(Sample{})
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		switch risk {
		case models.RiskLow, models.RiskMedium, models.RiskHigh:
		default:
			t.Fatalf("risk = %q, want one of Low/Medium/High", risk)
		}
	}
}

func TestSampleEnvironmentRegionalBands(t *testing.T) {
	tests := []struct {
		name                     string
		lat, lng                 float64
		minRain, maxRain         float64
		minTemp, maxTemp         float64
		minHumidity, maxHumidity float64
	}{
		{"coastal south band", 12.5, 80.0, 50, 150, 25, 35, 70, 95},
		{"inland west band", 22.0, 75.0, 10, 80, 30, 40, 50, 80},
		{"outside both bands", 48.0, 2.0, 0, 100, 20, 40, 40, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				s := SampleEnvironment(tt.lat, tt.lng)
				if s.Rainfall < tt.minRain || s.Rainfall > tt.maxRain {
					t.Fatalf("rainfall %.2f outside [%.0f, %.0f]", s.Rainfall, tt.minRain, tt.maxRain)
				}
				if s.Temperature < tt.minTemp || s.Temperature > tt.maxTemp {
					t.Fatalf("temperature %.2f outside [%.0f, %.0f]", s.Temperature, tt.minTemp, tt.maxTemp)
				}
				if s.Humidity < tt.minHumidity || s.Humidity > tt.maxHumidity {
					t.Fatalf("humidity %.2f outside [%.0f, %.0f]", s.Humidity, tt.minHumidity, tt.maxHumidity)
				}
			}
		})
	}
}
