package domain

// TripSummary is the derived view of a trip's distances and costs.
// It is recomputed from the current row snapshot on every request and never
// persisted; there is no incremental update path.
type TripSummary struct {
	// PlannedKm is the great-circle distance along the stops in index order.
	PlannedKm float64
	// ActualKm is the great-circle distance along the recorded track points
	// in capture order.
	ActualKm float64

	FuelTotal  float64
	TollTotal  float64
	StayTotal  float64
	GrandTotal float64
}
