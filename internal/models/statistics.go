package models

// DatasetStats summarizes the state of a built trajectory database.
type DatasetStats struct {
	VehicleCount    int64 `json:"vehicleCount"`
	SignalCount     int64 `json:"signalCount"`
	TrajectoryCount int64 `json:"trajectoryCount"`
	// SummarizedCount is the number of trajectories with computed
	// length/duration summaries (trips with at least two signals).
	SummarizedCount int64 `json:"summarizedCount"`
	NodeCount       int64 `json:"nodeCount"`
	// FailedMatchCount is the number of trajectories whose map matching
	// produced an error marker instead of nodes.
	FailedMatchCount int64 `json:"failedMatchCount"`

	Length   DistributionStats `json:"lengthM"`
	Duration DistributionStats `json:"durationS"`
}

// DistributionStats describes the distribution of one summary metric.
type DistributionStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Total  float64 `json:"total"`
}
