package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/internal/config"
)

func fv(v float64) *float64 { return &v }

func qualityTable() *Table {
	t := NewTable([]string{"n_audio", "rms_dbfs_mean"})
	t.AddRow("2024-06-01", []*float64{fv(10), fv(-20)})
	t.AddRow("2024-06-02", []*float64{fv(1), fv(-35)})
	t.AddRow("2024-06-03", []*float64{fv(12), fv(-22)})
	return t
}

func sensorTable() *Table {
	t := NewTable([]string{"dba_mean", "n_events"})
	t.AddRow("2024-06-01", []*float64{fv(60), fv(100)})
	t.AddRow("2024-06-03", []*float64{fv(80), fv(90)})
	return t
}

func TestMerge_Left(t *testing.T) {
	joined, err := Merge(qualityTable(), sensorTable(), Left)
	require.NoError(t, err)

	// primary {d1,d2,d3} left-joined with {d1,d3} keeps all 3 rows
	require.Len(t, joined.Rows, 3)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, joined.Dates())
	assert.NotNil(t, joined.Get("2024-06-01", "n_events"))
	assert.Nil(t, joined.Get("2024-06-02", "n_events"))
	assert.Equal(t, -35.0, *joined.Get("2024-06-02", "rms_dbfs_mean"))
}

func TestMerge_Inner(t *testing.T) {
	joined, err := Merge(qualityTable(), sensorTable(), Inner)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-03"}, joined.Dates())
}

func TestMerge_Outer(t *testing.T) {
	right := NewTable([]string{"log_n_events"})
	right.AddRow("2024-05-31", []*float64{fv(5)})
	right.AddRow("2024-06-02", []*float64{fv(7)})

	joined, err := Merge(qualityTable(), right, Outer)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-31", "2024-06-01", "2024-06-02", "2024-06-03"}, joined.Dates())
	assert.Nil(t, joined.Get("2024-05-31", "n_audio"))
	assert.Equal(t, 7.0, *joined.Get("2024-06-02", "log_n_events"))
}

func TestMerge_ColumnCollision(t *testing.T) {
	left := NewTable([]string{"n_audio"})
	right := NewTable([]string{"n_audio"})

	_, err := Merge(left, right, Inner)
	require.Error(t, err)
}

func TestAddSensorFlags(t *testing.T) {
	joined, err := Merge(qualityTable(), sensorTable(), Left)
	require.NoError(t, err)

	cfg := config.Anomaly{CaptureFailureDBA: 75, CaptureFailureMaxAudio: 2}
	AddSensorFlags(joined, cfg)

	assert.True(t, IsSet(joined.Get("2024-06-02", ColSensorMissing)))
	assert.False(t, IsSet(joined.Get("2024-06-01", ColSensorMissing)))
	assert.True(t, IsSet(joined.Get("2024-06-01", ColSensorPresent)))

	// d3 has dba_mean 80 but 12 recordings: not a capture failure
	assert.False(t, IsSet(joined.Get("2024-06-03", ColCaptureFailure)))
	// d2 has only one recording but no sensor dba at all
	assert.False(t, IsSet(joined.Get("2024-06-02", ColCaptureFailure)))
}

func TestAddSensorFlags_CaptureFailure(t *testing.T) {
	quality := NewTable([]string{"n_audio"})
	quality.AddRow("2024-06-01", []*float64{fv(1)})
	sensor := NewTable([]string{"dba_mean", "n_events"})
	sensor.AddRow("2024-06-01", []*float64{fv(80), fv(50)})

	joined, err := Merge(quality, sensor, Left)
	require.NoError(t, err)
	AddSensorFlags(joined, config.Anomaly{CaptureFailureDBA: 75, CaptureFailureMaxAudio: 2})

	assert.True(t, IsSet(joined.Get("2024-06-01", ColCaptureFailure)))
}

func TestAddAnomalyFlags(t *testing.T) {
	master := NewTable([]string{"total_files", "blur_mean", "log_n_events"})
	master.AddRow("2024-06-01", []*float64{fv(100), fv(200), fv(1000)})
	master.AddRow("2024-06-02", []*float64{fv(110), fv(210), fv(1100)})
	master.AddRow("2024-06-03", []*float64{fv(10), fv(220), fv(1050)}) // low count
	master.AddRow("2024-06-04", []*float64{fv(105), nil, fv(900)})

	AddAnomalyFlags(master, config.Anomaly{CountFactor: 0.3, QualityFactor: 0.4, LogFactor: 0.3}, nil)

	assert.True(t, IsSet(master.Get("2024-06-03", ColCountAnomaly)))
	assert.True(t, IsSet(master.Get("2024-06-03", ColAnyAnomaly)))
	assert.False(t, IsSet(master.Get("2024-06-01", ColCountAnomaly)))
	assert.False(t, IsSet(master.Get("2024-06-01", ColAnyAnomaly)))
	// nil cells never trip a flag
	assert.False(t, IsSet(master.Get("2024-06-04", ColQualityAnomaly)))
}

func TestAddAnomalyFlags_MissingColumnSkipped(t *testing.T) {
	master := NewTable([]string{"total_files"})
	master.AddRow("2024-06-01", []*float64{fv(100)})
	master.AddRow("2024-06-02", []*float64{fv(5)})

	AddAnomalyFlags(master, config.Anomaly{CountFactor: 0.3, QualityFactor: 0.4, LogFactor: 0.3}, nil)

	assert.Negative(t, master.ColumnIndex(ColQualityAnomaly))
	assert.Negative(t, master.ColumnIndex(ColLogAnomaly))
	assert.True(t, IsSet(master.Get("2024-06-02", ColCountAnomaly)))
	assert.True(t, IsSet(master.Get("2024-06-02", ColAnyAnomaly)))
}
