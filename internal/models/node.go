package models

// Node is one map-matched road-network point belonging to a trajectory.
// A trajectory has either a sequence of coordinate-bearing nodes or exactly
// one node carrying MatchError, never both.
type Node struct {
	NodeID     int64   `json:"nodeId" db:"node_id"`
	TrajID     int64   `json:"trajId" db:"traj_id"`
	Latitude   float64 `json:"latitude" db:"latitude"`
	Longitude  float64 `json:"longitude" db:"longitude"`
	H3Cell     int64   `json:"h3_12" db:"h3_12"`
	MatchError *string `json:"matchError,omitempty" db:"match_error"`
}
