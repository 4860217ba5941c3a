package models

// Trajectory represents the derived summary of one (vehicle, trip) group.
// Summary fields stay nil for trips with fewer than two signals.
type Trajectory struct {
	TrajID    int64    `json:"trajId" db:"traj_id"`
	VehicleID int64    `json:"vehicleId" db:"vehicle_id"`
	TripID    int64    `json:"tripId" db:"trip_id"`
	LengthM   *float64 `json:"lengthM,omitempty" db:"length_m"`
	DtIni     *string  `json:"dtIni,omitempty" db:"dt_ini"`
	DtEnd     *string  `json:"dtEnd,omitempty" db:"dt_end"`
	DurationS *float64 `json:"durationS,omitempty" db:"duration_s"`
	H3Ini     *int64   `json:"h3_12_ini,omitempty" db:"h3_12_ini"`
	H3End     *int64   `json:"h3_12_end,omitempty" db:"h3_12_end"`
}

// TrajectoryUpdate carries the computed summary fields for one trajectory
type TrajectoryUpdate struct {
	TrajID    int64
	LengthM   float64
	DtIni     string
	DtEnd     string
	DurationS float64
	H3Ini     int64
	H3End     int64
}

// TrajectoryFilter represents filter parameters for querying trajectories
type TrajectoryFilter struct {
	VehicleID   int64   `form:"vehicleId"`
	MinLength   float64 `form:"minLength"`
	MaxLength   float64 `form:"maxLength"`
	MinDuration float64 `form:"minDuration"`
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}
