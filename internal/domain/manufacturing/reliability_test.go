package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/swarmsim-go/internal/domain/manufacturing"
)

func TestReliability_Availability(t *testing.T) {
	tests := []struct {
		name     string
		mtbf     float64
		mttr     float64
		expected float64
	}{
		{"typical", 900, 100, 0.9},
		{"never fails to repair", 500, 0, 1.0},
		{"zero mtbf", 0, 10, 0.0},
		{"negative mtbf", -5, 10, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := manufacturing.Reliability{MTBFHours: tt.mtbf, MTTRHours: tt.mttr}
			assert.InDelta(t, tt.expected, r.Availability(), 1e-12)
		})
	}
}

func TestNewReliability_RequiresBothFigures(t *testing.T) {
	mtbf, mttr := 1000.0, 10.0

	assert.Nil(t, manufacturing.NewReliability(&mtbf, nil))
	assert.Nil(t, manufacturing.NewReliability(nil, &mttr))
	assert.Equal(t, 1.0, manufacturing.AvailabilityOf(nil))

	r := manufacturing.NewReliability(&mtbf, &mttr)
	assert.NotNil(t, r)
	assert.InDelta(t, 1000.0/1010.0, manufacturing.AvailabilityOf(r), 1e-12)
}
