package models

// Signal represents one raw telemetry sample from the eVED archive.
// Optional sensor channels are pointers: nil means the source column was
// empty (or carried the "nan" marker) for that sample.
type Signal struct {
	SignalID  int64   `json:"signalId" db:"signal_id"`
	DayNum    float64 `json:"dayNum" db:"day_num"`
	VehicleID int64   `json:"vehicleId" db:"vehicle_id"`
	TripID    int64   `json:"tripId" db:"trip_id"`
	TimeStamp int64   `json:"timeStamp" db:"time_stamp"` // milliseconds since trip start
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	// Sensor channels
	Speed             *float64 `json:"speed,omitempty" db:"speed"`
	MAF               *float64 `json:"maf,omitempty" db:"maf"`
	RPM               *float64 `json:"rpm,omitempty" db:"rpm"`
	AbsLoad           *float64 `json:"absLoad,omitempty" db:"abs_load"`
	OAT               *float64 `json:"oat,omitempty" db:"oat"`
	FuelRate          *float64 `json:"fuelRate,omitempty" db:"fuel_rate"`
	ACPowerKW         *float64 `json:"acPowerKw,omitempty" db:"ac_power_kw"`
	ACPowerW          *float64 `json:"acPowerW,omitempty" db:"ac_power_w"`
	HeaterPowerW      *float64 `json:"heaterPowerW,omitempty" db:"heater_power_w"`
	HVBatteryCurrent  *float64 `json:"hvBatteryCurrent,omitempty" db:"hv_bat_current"`
	HVBatterySOC      *float64 `json:"hvBatterySoc,omitempty" db:"hv_bat_soc"`
	HVBatteryVoltage  *float64 `json:"hvBatteryVoltage,omitempty" db:"hv_bat_volt"`
	ShortFuelTrimB1   *float64 `json:"shortFuelTrimB1,omitempty" db:"st_ftb_1"`
	ShortFuelTrimB2   *float64 `json:"shortFuelTrimB2,omitempty" db:"st_ftb_2"`
	LongFuelTrimB1    *float64 `json:"longFuelTrimB1,omitempty" db:"lt_ftb_1"`
	LongFuelTrimB2    *float64 `json:"longFuelTrimB2,omitempty" db:"lt_ftb_2"`
	Elevation         *float64 `json:"elevation,omitempty" db:"elevation"`
	ElevationSmooth   *float64 `json:"elevationSmooth,omitempty" db:"elevation_smooth"`
	Gradient          *float64 `json:"gradient,omitempty" db:"gradient"`
	EnergyConsumption *float64 `json:"energyConsumption,omitempty" db:"energy_consumption"`

	// Map-matched position as shipped in the source data
	MatchLatitude  float64 `json:"matchLatitude" db:"match_latitude"`
	MatchLongitude float64 `json:"matchLongitude" db:"match_longitude"`
	MatchType      float64 `json:"matchType" db:"match_type"`

	// Road metadata
	SpeedLimitClass     *float64 `json:"speedLimitClass,omitempty" db:"speed_limit_type"`
	SpeedLimit          *string  `json:"speedLimit,omitempty" db:"speed_limit"`
	SpeedLimitDirection *int64   `json:"speedLimitDirection,omitempty" db:"speed_limit_direct"`
	Intersection        *int64   `json:"intersection,omitempty" db:"intersection"`
	BusStop             *int64   `json:"busStop,omitempty" db:"bus_stop"`
	FocusPoints         *string  `json:"focusPoints,omitempty" db:"focus_points"`

	// H3 cell (resolution 12) of the matched coordinate
	H3Cell int64 `json:"h3_12" db:"h3_12"`
}

// TrajectoryPoint is the slimmed-down projection of a signal used by the
// trajectory aggregation and map-matching stages. Depending on the accessor
// it carries either the matched or the raw coordinate.
type TrajectoryPoint struct {
	SignalID  int64
	DayNum    float64
	TimeStamp int64
	Latitude  float64
	Longitude float64
}
