// Package predict estimates a coarse disaster risk level from environmental
// readings. It stands in for an external modeling collaborator: callers treat
// it as a black box that must never block or fail an SOS creation.
package predict

import (
	"math"
	"math/rand"

	"disaster-response/internal/models"
)

// Sample holds the three environmental features the classifier scores.
type Sample struct {
	Rainfall    float64 `json:"rainfall" validate:"gte=0"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity" validate:"gte=0,lte=100"`
}

// Predictor classifies an environmental sample into Low, Medium or High.
type Predictor interface {
	Predict(sample Sample) (models.RiskLevel, error)
}

// centroid is the mean feature vector of one risk class in the reference
// observations the classifier was fitted on.
type centroid struct {
	risk   models.RiskLevel
	sample Sample
}

// Classifier is a nearest-centroid model over ten reference observations of
// (rainfall, temperature, humidity).
type Classifier struct {
	centroids []centroid
	scale     Sample
}

// Reference observations: rainfall mm, temperature °C, relative humidity %.
var referenceObservations = []struct {
	sample Sample
	risk   models.RiskLevel
}{
	{Sample{10, 25, 60}, models.RiskLow},
	{Sample{50, 30, 80}, models.RiskMedium},
	{Sample{100, 35, 90}, models.RiskHigh},
	{Sample{5, 20, 50}, models.RiskLow},
	{Sample{80, 40, 95}, models.RiskHigh},
	{Sample{60, 28, 70}, models.RiskMedium},
	{Sample{20, 32, 65}, models.RiskLow},
	{Sample{150, 38, 98}, models.RiskHigh},
	{Sample{30, 27, 75}, models.RiskMedium},
	{Sample{70, 33, 88}, models.RiskHigh},
}

// NewClassifier fits the nearest-centroid model on the reference observations.
func NewClassifier() *Classifier {
	sums := make(map[models.RiskLevel]*Sample)
	counts := make(map[models.RiskLevel]int)
	for _, obs := range referenceObservations {
		if sums[obs.risk] == nil {
			sums[obs.risk] = &Sample{}
		}
		sums[obs.risk].Rainfall += obs.sample.Rainfall
		sums[obs.risk].Temperature += obs.sample.Temperature
		sums[obs.risk].Humidity += obs.sample.Humidity
		counts[obs.risk]++
	}

	c := &Classifier{
		// Rough feature ranges, used to normalize distances so rainfall
		// does not dominate the other two features.
		scale: Sample{Rainfall: 150, Temperature: 40, Humidity: 100},
	}
	for _, risk := range []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh} {
		n := float64(counts[risk])
		c.centroids = append(c.centroids, centroid{
			risk: risk,
			sample: Sample{
				Rainfall:    sums[risk].Rainfall / n,
				Temperature: sums[risk].Temperature / n,
				Humidity:    sums[risk].Humidity / n,
			},
		})
	}
	return c
}

// Predict returns the risk class whose centroid is nearest to the sample.
func (c *Classifier) Predict(sample Sample) (models.RiskLevel, error) {
	best := models.RiskUnknown
	bestDist := math.Inf(1)
	for _, ct := range c.centroids {
		dr := (sample.Rainfall - ct.sample.Rainfall) / c.scale.Rainfall
		dt := (sample.Temperature - ct.sample.Temperature) / c.scale.Temperature
		dh := (sample.Humidity - ct.sample.Humidity) / c.scale.Humidity
		dist := dr*dr + dt*dt + dh*dh
		if dist < bestDist {
			bestDist = dist
			best = ct.risk
		}
	}
	return best, nil
}

// RandomPredictor is the fallback used when no trained model is available.
// It mirrors the behavior of the modeling collaborator's dummy mode: a
// uniformly random pick of the three classes.
type RandomPredictor struct{}

func (RandomPredictor) Predict(Sample) (models.RiskLevel, error) {
	levels := []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh}
	return levels[rand.Intn(len(levels))], nil
}
