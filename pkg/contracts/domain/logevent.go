package domain

// LogEvent is one flattened traffic-log JSON line. Pointer fields are nil when
// the source JSON lacks the value; the CSV layer writes them as empty cells so
// missing is always distinguishable from zero.
type LogEvent struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	FrameDTO string `json:"frame_dto"`
	DTO      string `json:"dto"`

	ImgPath string `json:"img_path"`
	ImgFile string `json:"img_file"`

	DBA    *float64 `json:"dba"`
	DBADTO string   `json:"dba_dto"`

	Intersection0 *float64 `json:"intersection_0"`
	Intersection1 *float64 `json:"intersection_1"`
	Cross00       *float64 `json:"cross_0_0"`
	Cross01       *float64 `json:"cross_0_1"`
	Cross10       *float64 `json:"cross_1_0"`
	Cross11       *float64 `json:"cross_1_1"`

	Probs    *float64 `json:"probs"`
	Class    *float64 `json:"cls"`
	PointLen *float64 `json:"point_len"`

	BoxX1 *float64 `json:"box_x1"`
	BoxY1 *float64 `json:"box_y1"`
	BoxX2 *float64 `json:"box_x2"`
	BoxY2 *float64 `json:"box_y2"`

	TID     *float64 `json:"tid"`
	SeqLen  *float64 `json:"seq_len"`
	SeqPath string   `json:"seq_path"`

	LogFile string `json:"log_file"`
}

// SensorReading is one sensor-reported sound measurement extracted from a log
// line carrying a dBA window. DBAMean and DBAP90 summarize the window.
type SensorReading struct {
	Date    string   `json:"date"`
	SndLvl  *float64 `json:"snd_lvl"`
	DBAMean float64  `json:"dba_mean"`
	DBAP90  float64  `json:"dba_p90"`
}
