package models

// CorrelationPair is the correlation coefficient between the time series of
// two museums, with the great-circle distance between them for context.
// Pairs are directional in the stacked matrix (both (a,b) and (b,a) appear),
// matching the stacked form of a full correlation matrix with the diagonal
// removed.
type CorrelationPair struct {
	MuseumA        int     `json:"museumA"`
	MuseumB        int     `json:"museumB"`
	Coefficient    float64 `json:"coefficient"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// CorrelationResult is the full stacked matrix plus its threshold partitions.
// High and Inverse are disjoint: a coefficient is high when it exceeds the
// upper threshold and inverse when it falls below the lower one.
type CorrelationResult struct {
	Method      string            `json:"method"`
	Granularity Granularity       `json:"granularity"`
	Matrix      []CorrelationPair `json:"matrix"`
	High        []CorrelationPair `json:"high"`
	Inverse     []CorrelationPair `json:"inverse"`
}
