package models

// Vehicle represents one static vehicle record from the VED workbooks
type Vehicle struct {
	VehicleID    int64   `json:"vehicleId" db:"vehicle_id"`
	VehicleType  *string `json:"vehicleType,omitempty" db:"vehicle_type"`
	VehicleClass *string `json:"vehicleClass,omitempty" db:"vehicle_class"`
	Engine       *string `json:"engine,omitempty" db:"engine"`
	Transmission *string `json:"transmission,omitempty" db:"transmission"`
	DriveWheels  *string `json:"driveWheels,omitempty" db:"drive_wheels"`
	Weight       *int64  `json:"weight,omitempty" db:"weight"`
}
