package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NodeColor is one assignment of the result: the external node label and
// its color.
type NodeColor struct {
	Node  string `json:"node"`
	Color int    `json:"color"`
}

// RunRecord archives one completed coloring run.
type RunRecord struct {
	VersionedRecord
	ID             string      `json:"id"`
	CreatedAtUTC   string      `json:"created_at_utc"`
	Seed           int64       `json:"seed"`
	PopulationSize int         `json:"population_size"`
	NoOfColors     int         `json:"no_of_colors"`
	NoOfChunks     int         `json:"no_of_chunks"`
	Iterations     int         `json:"iterations"`
	BestEnergy     float64     `json:"best_energy"`
	Proper         bool        `json:"proper"`
	Coloring       []NodeColor `json:"coloring"`
}
