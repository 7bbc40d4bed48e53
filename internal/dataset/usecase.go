package dataset

// Record is one scored assignment: which piece and hand were evaluated, how
// many playable slices the assignment covered, and the resulting score.
type Record struct {
	Piece  string  `json:"piece"`
	Hand   string  `json:"hand"`
	Slices int     `json:"slices"`
	Score  float64 `json:"score"`
}

// Recorder accepts evaluation records for long-term collection.
type Recorder interface {
	Append(record Record)
	Recent() []Record
	Close()
}
