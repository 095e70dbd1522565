package fees_test

import (
	"testing"

	"github.com/permitpath/permitpath/pkg/fees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleYAML = `
jurisdictions:
  oakland-ca:
    electrical-panel:
      flat: 225.50
    kitchen-remodel:
      flat: 150
      per_thousand: 12.5
      minimum: 300
  berkeley-ca:
    electrical-panel:
      flat: 180
`

func load(t *testing.T) *fees.Schedule {
	t.Helper()
	s, err := fees.Parse([]byte(scheduleYAML))
	require.NoError(t, err)
	return s
}

func TestSchedule_Estimate_Flat(t *testing.T) {
	s := load(t)

	est, err := s.Estimate("oakland-ca", "electrical-panel", 0)
	require.NoError(t, err)
	assert.Equal(t, 225.50, est.Total)
}

func TestSchedule_Estimate_Valuation(t *testing.T) {
	s := load(t)

	// 150 + 12.5 * 40000/1000 = 650
	est, err := s.Estimate("oakland-ca", "kitchen-remodel", 40000)
	require.NoError(t, err)
	assert.Equal(t, 650.0, est.Total)
}

func TestSchedule_Estimate_MinimumApplies(t *testing.T) {
	s := load(t)

	// 150 + 12.5 * 2000/1000 = 175, floored at 300
	est, err := s.Estimate("oakland-ca", "kitchen-remodel", 2000)
	require.NoError(t, err)
	assert.Equal(t, 300.0, est.Total)
}

func TestSchedule_Estimate_Unknowns(t *testing.T) {
	s := load(t)

	_, err := s.Estimate("gotham", "electrical-panel", 0)
	assert.ErrorIs(t, err, fees.ErrJurisdictionUnknown)

	_, err = s.Estimate("berkeley-ca", "kitchen-remodel", 0)
	assert.ErrorIs(t, err, fees.ErrNoFeeRule)
}

func TestSchedule_Jurisdictions(t *testing.T) {
	s := load(t)
	assert.Equal(t, []string{"berkeley-ca", "oakland-ca"}, s.Jurisdictions())
}

func TestParse_Empty(t *testing.T) {
	_, err := fees.Parse([]byte("jurisdictions: {}"))
	assert.Error(t, err)
}
