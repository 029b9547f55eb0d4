package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 31, d.Day())

	_, err = ParseDate("31/01/2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 5)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-05"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDaysInclusiveCountsBothEndpoints(t *testing.T) {
	start := NewDate(2026, time.January, 1)
	assert.Equal(t, 31, start.DaysInclusive(NewDate(2026, time.January, 31)))
	assert.Equal(t, 1, start.DaysInclusive(start))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2026-06-15"))
	assert.Equal(t, 15, d.Day())

	require.NoError(t, d.Scan(time.Date(2026, time.July, 4, 18, 30, 0, 0, time.Local)))
	assert.Equal(t, 4, d.Day())
	assert.True(t, d.Equal(NewDate(2026, time.July, 4).Time))
}

func TestEnergyTypeCanonicalOrder(t *testing.T) {
	assert.Equal(t, []EnergyType{EnergySolar, EnergyWind, EnergyNaturalGas, EnergyNuclear, EnergyCoal, EnergyHydro}, EnergyTypes)
	assert.True(t, EnergyNaturalGas.Valid())
	assert.False(t, EnergyType("Geothermal").Valid())
	assert.True(t, StatusReserved.Valid())
	assert.False(t, ContractStatus("Pending").Valid())
}
