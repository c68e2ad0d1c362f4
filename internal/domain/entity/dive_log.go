package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

// GasType identifies the breathing gas used on a dive.
type GasType string

const (
	GasAir    GasType = "air"
	GasNitrox GasType = "nitrox"
)

const (
	maxDiveDuration  = 24 * time.Hour
	maxStartPressure = 350.0 // bar
	maxTankVolume    = 50.0  // liters
	airOxygenPercent = 21.0
	maxNotesLen      = 2000
)

// DiveLog is a standalone record of a single dive. All mutation goes through
// named methods that re-validate the affected fields.
type DiveLog struct {
	id               string
	userID           string
	divingSpotID     string
	buddyUserID      *string
	diveDate         time.Time
	duration         time.Duration
	maxDepth         values.Depth
	averageDepth     *values.Depth
	waterTemperature *values.WaterTemperature
	visibility       *values.Visibility
	startPressure    float64
	endPressure      float64
	tankVolume       float64
	gasType          GasType
	oxygenPercentage *float64
	notes            *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewDiveLogInput carries the arguments for NewDiveLog. GasType defaults to
// air when empty.
type NewDiveLogInput struct {
	UserID           string
	DivingSpotID     string
	DiveDate         time.Time
	Duration         time.Duration
	MaxDepth         values.Depth
	StartPressure    float64
	EndPressure      float64
	TankVolume       float64
	GasType          GasType
	OxygenPercentage *float64
}

// NewDiveLog validates and creates a dive log.
func NewDiveLog(in NewDiveLogInput) (*DiveLog, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}
	if strings.TrimSpace(in.DivingSpotID) == "" {
		return nil, domain.NewValidationError("divingSpotId", "is required")
	}
	if err := validateDiveTiming(in.DiveDate, in.Duration); err != nil {
		return nil, err
	}
	gas := in.GasType
	if gas == "" {
		gas = GasAir
	}
	if err := validateEquipment(in.StartPressure, in.EndPressure, in.TankVolume, gas, in.OxygenPercentage); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &DiveLog{
		id:               uuid.NewString(),
		userID:           in.UserID,
		divingSpotID:     in.DivingSpotID,
		diveDate:         in.DiveDate,
		duration:         in.Duration,
		maxDepth:         in.MaxDepth,
		startPressure:    in.StartPressure,
		endPressure:      in.EndPressure,
		tankVolume:       in.TankVolume,
		gasType:          gas,
		oxygenPercentage: in.OxygenPercentage,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func validateDiveTiming(date time.Time, duration time.Duration) error {
	if date.After(time.Now()) {
		return domain.NewValidationError("diveDate", "cannot be in the future")
	}
	if duration <= 0 || duration > maxDiveDuration {
		return domain.NewValidationError("duration", "must be greater than 0 and at most 24 hours")
	}
	return nil
}

func validateEquipment(start, end, volume float64, gas GasType, o2 *float64) error {
	if start <= 0 || start > maxStartPressure {
		return domain.NewValidationError("startPressure", "must be greater than 0 and at most 350 bar")
	}
	if end < 0 || end >= start {
		return domain.NewValidationError("endPressure", "must be at least 0 and less than start pressure")
	}
	if volume <= 0 || volume > maxTankVolume {
		return domain.NewValidationError("tankVolume", "must be greater than 0 and at most 50 liters")
	}
	switch gas {
	case GasAir:
		if o2 != nil && *o2 != airOxygenPercent {
			return domain.NewValidationError("oxygenPercentage", "must be 21 for air")
		}
	case GasNitrox:
		if o2 != nil && (*o2 < airOxygenPercent || *o2 > 100) {
			return domain.NewValidationError("oxygenPercentage", "must be between 21 and 100")
		}
	default:
		return domain.NewValidationError("gasType", "must be air or nitrox")
	}
	return nil
}

// UpdateDiveDetails replaces timing and depth data. averageDepth, when set,
// must not exceed maxDepth.
func (d *DiveLog) UpdateDiveDetails(date time.Time, duration time.Duration, maxDepth values.Depth, averageDepth *values.Depth) error {
	if err := validateDiveTiming(date, duration); err != nil {
		return err
	}
	if averageDepth != nil && averageDepth.Meters() > maxDepth.Meters() {
		return domain.NewValidationError("averageDepth", "cannot exceed max depth")
	}
	d.diveDate = date
	d.duration = duration
	d.maxDepth = maxDepth
	d.averageDepth = averageDepth
	d.touch()
	return nil
}

// UpdateEquipment replaces pressures, tank volume and gas mix.
func (d *DiveLog) UpdateEquipment(startPressure, endPressure, tankVolume float64, gas GasType, oxygenPercentage *float64) error {
	if gas == "" {
		gas = GasAir
	}
	if err := validateEquipment(startPressure, endPressure, tankVolume, gas, oxygenPercentage); err != nil {
		return err
	}
	d.startPressure = startPressure
	d.endPressure = endPressure
	d.tankVolume = tankVolume
	d.gasType = gas
	d.oxygenPercentage = oxygenPercentage
	d.touch()
	return nil
}

// UpdateConditions records observed water temperature and visibility.
func (d *DiveLog) UpdateConditions(temp *values.WaterTemperature, visibility *values.Visibility) {
	d.waterTemperature = temp
	d.visibility = visibility
	d.touch()
}

// UpdateNotes sets free-form notes. Blank notes are stored as unset.
func (d *DiveLog) UpdateNotes(notes *string) error {
	trimmed := trimOptional(notes)
	if trimmed != nil && len(*trimmed) > maxNotesLen {
		return domain.NewValidationError("notes", "must be at most 2000 characters")
	}
	d.notes = trimmed
	d.touch()
	return nil
}

// SetBuddy records the dive buddy. A diver cannot buddy with themselves.
func (d *DiveLog) SetBuddy(buddyUserID string) error {
	if strings.TrimSpace(buddyUserID) == "" {
		return domain.NewValidationError("buddyUserId", "is required")
	}
	if buddyUserID == d.userID {
		return domain.NewValidationError("buddyUserId", "cannot be the diver themselves")
	}
	d.buddyUserID = &buddyUserID
	d.touch()
	return nil
}

// RemoveBuddy clears the dive buddy.
func (d *DiveLog) RemoveBuddy() {
	d.buddyUserID = nil
	d.touch()
}

// AirConsumed returns the consumed gas volume in liters, computed from the
// current state on every call.
func (d *DiveLog) AirConsumed() float64 {
	return (d.startPressure - d.endPressure) * d.tankVolume
}

// SACRate returns the surface air consumption rate in liters per minute, or 0
// when no average depth is recorded or the duration rounds to zero minutes.
func (d *DiveLog) SACRate() float64 {
	if d.averageDepth == nil {
		return 0
	}
	minutes := d.duration.Minutes()
	if minutes == 0 {
		return 0
	}
	averagePressure := d.averageDepth.Meters()/10 + 1
	return d.AirConsumed() / minutes / averagePressure
}

func (d *DiveLog) touch() { d.updatedAt = time.Now().UTC() }

func (d *DiveLog) ID() string                                  { return d.id }
func (d *DiveLog) UserID() string                              { return d.userID }
func (d *DiveLog) DivingSpotID() string                        { return d.divingSpotID }
func (d *DiveLog) BuddyUserID() *string                        { return copyOptional(d.buddyUserID) }
func (d *DiveLog) DiveDate() time.Time                         { return d.diveDate }
func (d *DiveLog) Duration() time.Duration                     { return d.duration }
func (d *DiveLog) MaxDepth() values.Depth                      { return d.maxDepth }
func (d *DiveLog) AverageDepth() *values.Depth                 { return d.averageDepth }
func (d *DiveLog) WaterTemperature() *values.WaterTemperature  { return d.waterTemperature }
func (d *DiveLog) Visibility() *values.Visibility              { return d.visibility }
func (d *DiveLog) StartPressure() float64                      { return d.startPressure }
func (d *DiveLog) EndPressure() float64                        { return d.endPressure }
func (d *DiveLog) TankVolume() float64                         { return d.tankVolume }
func (d *DiveLog) Gas() GasType                                { return d.gasType }
func (d *DiveLog) OxygenPercentage() *float64                  { return copyOptionalFloat(d.oxygenPercentage) }
func (d *DiveLog) Notes() *string                              { return copyOptional(d.notes) }
func (d *DiveLog) CreatedAt() time.Time                        { return d.createdAt }
func (d *DiveLog) UpdatedAt() time.Time                        { return d.updatedAt }

// DiveLogRecord is the persistence mapping for DiveLog.
type DiveLogRecord struct {
	ID               string
	UserID           string
	DivingSpotID     string
	BuddyUserID      *string
	DiveDate         time.Time
	Duration         time.Duration
	MaxDepth         values.Depth
	AverageDepth     *values.Depth
	WaterTemperature *values.WaterTemperature
	Visibility       *values.Visibility
	StartPressure    float64
	EndPressure      float64
	TankVolume       float64
	GasType          GasType
	OxygenPercentage *float64
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreDiveLog rehydrates a dive log from the store without re-validating.
func RestoreDiveLog(rec DiveLogRecord) *DiveLog {
	return &DiveLog{
		id:               rec.ID,
		userID:           rec.UserID,
		divingSpotID:     rec.DivingSpotID,
		buddyUserID:      rec.BuddyUserID,
		diveDate:         rec.DiveDate,
		duration:         rec.Duration,
		maxDepth:         rec.MaxDepth,
		averageDepth:     rec.AverageDepth,
		waterTemperature: rec.WaterTemperature,
		visibility:       rec.Visibility,
		startPressure:    rec.StartPressure,
		endPressure:      rec.EndPressure,
		tankVolume:       rec.TankVolume,
		gasType:          rec.GasType,
		oxygenPercentage: rec.OxygenPercentage,
		notes:            rec.Notes,
		createdAt:        rec.CreatedAt,
		updatedAt:        rec.UpdatedAt,
	}
}

// Record exports the dive log for persistence.
func (d *DiveLog) Record() DiveLogRecord {
	return DiveLogRecord{
		ID:               d.id,
		UserID:           d.userID,
		DivingSpotID:     d.divingSpotID,
		BuddyUserID:      d.buddyUserID,
		DiveDate:         d.diveDate,
		Duration:         d.duration,
		MaxDepth:         d.maxDepth,
		AverageDepth:     d.averageDepth,
		WaterTemperature: d.waterTemperature,
		Visibility:       d.visibility,
		StartPressure:    d.startPressure,
		EndPressure:      d.endPressure,
		TankVolume:       d.tankVolume,
		GasType:          d.gasType,
		OxygenPercentage: d.oxygenPercentage,
		Notes:            d.notes,
		CreatedAt:        d.createdAt,
		UpdatedAt:        d.updatedAt,
	}
}
