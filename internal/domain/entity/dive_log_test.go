package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

func mustDepth(t *testing.T, m float64) values.Depth {
	t.Helper()
	d, err := values.DepthFromMeters(m)
	require.NoError(t, err)
	return d
}

func validDiveLogInput(t *testing.T) NewDiveLogInput {
	t.Helper()
	return NewDiveLogInput{
		UserID:        "user-1",
		DivingSpotID:  "spot-1",
		DiveDate:      time.Now().Add(-2 * time.Hour),
		Duration:      45 * time.Minute,
		MaxDepth:      mustDepth(t, 30),
		StartPressure: 200,
		EndPressure:   50,
		TankVolume:    12,
	}
}

func TestNewDiveLogDefaultsToAir(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)
	assert.Equal(t, GasAir, log.Gas())
	assert.NotEmpty(t, log.ID())
	assert.Nil(t, log.BuddyUserID())
	assert.Nil(t, log.Notes())
}

func TestNewDiveLogValidation(t *testing.T) {
	o2Low := 18.0
	o2High := 101.0
	o2Air := 21.0
	o2Nitrox := 32.0

	tests := []struct {
		name   string
		mutate func(*NewDiveLogInput)
		field  string
	}{
		{"missing user", func(in *NewDiveLogInput) { in.UserID = " " }, "userId"},
		{"missing spot", func(in *NewDiveLogInput) { in.DivingSpotID = "" }, "divingSpotId"},
		{"future dive date", func(in *NewDiveLogInput) { in.DiveDate = time.Now().Add(time.Hour) }, "diveDate"},
		{"zero duration", func(in *NewDiveLogInput) { in.Duration = 0 }, "duration"},
		{"duration beyond a day", func(in *NewDiveLogInput) { in.Duration = 24*time.Hour + time.Minute }, "duration"},
		{"zero start pressure", func(in *NewDiveLogInput) { in.StartPressure = 0 }, "startPressure"},
		{"start pressure above 350", func(in *NewDiveLogInput) { in.StartPressure = 350.5 }, "startPressure"},
		{"negative end pressure", func(in *NewDiveLogInput) { in.EndPressure = -1 }, "endPressure"},
		{"end pressure at start", func(in *NewDiveLogInput) { in.EndPressure = in.StartPressure }, "endPressure"},
		{"zero tank volume", func(in *NewDiveLogInput) { in.TankVolume = 0 }, "tankVolume"},
		{"tank volume above 50", func(in *NewDiveLogInput) { in.TankVolume = 50.1 }, "tankVolume"},
		{"air with wrong oxygen", func(in *NewDiveLogInput) { in.OxygenPercentage = &o2Nitrox }, "oxygenPercentage"},
		{"nitrox oxygen below 21", func(in *NewDiveLogInput) { in.GasType = GasNitrox; in.OxygenPercentage = &o2Low }, "oxygenPercentage"},
		{"nitrox oxygen above 100", func(in *NewDiveLogInput) { in.GasType = GasNitrox; in.OxygenPercentage = &o2High }, "oxygenPercentage"},
		{"unknown gas", func(in *NewDiveLogInput) { in.GasType = "trimix" }, "gasType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validDiveLogInput(t)
			tt.mutate(&in)
			_, err := NewDiveLog(in)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	// air with explicit 21 is fine
	in := validDiveLogInput(t)
	in.OxygenPercentage = &o2Air
	_, err := NewDiveLog(in)
	require.NoError(t, err)
}

func TestAirConsumed(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)
	// (200-50)*12
	assert.Equal(t, 1800.0, log.AirConsumed())
}

func TestSACRate(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)

	// no average depth recorded yet
	assert.Equal(t, 0.0, log.SACRate())

	avg := mustDepth(t, 20)
	require.NoError(t, log.UpdateDiveDetails(log.DiveDate(), 45*time.Minute, mustDepth(t, 30), &avg))

	// 1800 / 45 / ((20/10)+1) = 13.33
	assert.InDelta(t, 13.333, log.SACRate(), 0.001)
}

func TestUpdateDiveDetailsRejectsAverageAboveMax(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)

	avg := mustDepth(t, 35)
	err = log.UpdateDiveDetails(log.DiveDate(), time.Hour, mustDepth(t, 30), &avg)
	require.Error(t, err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "averageDepth", ve.Field)
}

func TestUpdateEquipmentRevalidates(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)

	o2 := 36.0
	require.NoError(t, log.UpdateEquipment(210, 60, 15, GasNitrox, &o2))
	assert.Equal(t, GasNitrox, log.Gas())
	assert.Equal(t, (210.0-60.0)*15.0, log.AirConsumed())

	err = log.UpdateEquipment(210, 220, 15, GasNitrox, &o2)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestBuddyRules(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)

	err = log.SetBuddy("user-1")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	require.NoError(t, log.SetBuddy("user-2"))
	require.NotNil(t, log.BuddyUserID())
	assert.Equal(t, "user-2", *log.BuddyUserID())

	log.RemoveBuddy()
	assert.Nil(t, log.BuddyUserID())
}

func TestUpdateNotesBlankBecomesUnset(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)

	blank := "   "
	require.NoError(t, log.UpdateNotes(&blank))
	assert.Nil(t, log.Notes())

	text := "  saw a turtle  "
	require.NoError(t, log.UpdateNotes(&text))
	require.NotNil(t, log.Notes())
	assert.Equal(t, "saw a turtle", *log.Notes())

	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'x'
	}
	tooLong := string(long)
	err = log.UpdateNotes(&tooLong)
	require.Error(t, err)
}

func TestDiveLogRecordRoundTrip(t *testing.T) {
	log, err := NewDiveLog(validDiveLogInput(t))
	require.NoError(t, err)
	require.NoError(t, log.SetBuddy("user-2"))

	restored := RestoreDiveLog(log.Record())
	assert.Equal(t, log.ID(), restored.ID())
	assert.Equal(t, log.AirConsumed(), restored.AirConsumed())
	require.NotNil(t, restored.BuddyUserID())
	assert.Equal(t, "user-2", *restored.BuddyUserID())
}
