package etl

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signalHeader = "DayNum,VehId,Trip,Timestamp(ms),Latitude[deg],Longitude[deg]," +
	"Vehicle Speed[km/h],Engine RPM[RPM],Fuel Rate[L/hr]," +
	"Matchted Latitude[deg],Matched Longitude[deg],Match Type\n"

func TestParseSignals(t *testing.T) {
	csvText := signalHeader +
		"1.5,8,704,0,42.281,-83.743,35.0,1500,1.2,42.2811,-83.7431,1\n" +
		"1.5,8,704,1000,42.282,-83.744,,,,42.2821,-83.7441,1\n"

	signals, skipped, err := ParseSignals(csvText)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, int64(8), first.VehicleID)
	assert.Equal(t, int64(704), first.TripID)
	assert.Equal(t, int64(0), first.TimeStamp)
	assert.Equal(t, 1.5, first.DayNum)
	assert.Equal(t, 42.2811, first.MatchLatitude)
	require.NotNil(t, first.Speed)
	assert.Equal(t, 35.0, *first.Speed)
	require.NotNil(t, first.RPM)
	assert.Equal(t, 1500.0, *first.RPM)
	assert.NotZero(t, first.H3Cell)

	second := signals[1]
	assert.Nil(t, second.Speed)
	assert.Nil(t, second.RPM)
	assert.Nil(t, second.FuelRate)
	assert.NotZero(t, second.H3Cell)
}

func TestParseSignals_MalformedRowSkipped(t *testing.T) {
	csvText := signalHeader +
		"1.5,8,704,0,42.281,-83.743,,,,42.2811,-83.7431,1\n" +
		"1.5,8,704,not-a-number,42.282,-83.744,,,,42.2821,-83.7441,1\n" +
		"1.5,8,704,2000,42.283,-83.745,,,,42.2831,-83.7451,1\n"

	signals, skipped, err := ParseSignals(csvText)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, signals, 2)
}

func TestParseSignals_MissingRequiredColumn(t *testing.T) {
	csvText := signalHeader +
		"1.5,8,704,0,42.281,-83.743,,,,,,1\n" // matched coords empty

	signals, skipped, err := ParseSignals(csvText)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Empty(t, signals)
}

func TestSignalArchive(t *testing.T) {
	repo := t.TempDir()
	archiveDir := filepath.Join(repo, "eved", "data")
	require.NoError(t, os.MkdirAll(archiveDir, 0o755))

	f, err := os.Create(filepath.Join(archiveDir, "eVED.zip"))
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("week_01.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(signalHeader +
		"1.5,8,704,0,42.281,-83.743,nan,nan,nan;,42.2811,-83.7431,1\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	archive := NewSignalArchive(repo)

	names, err := archive.FileNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"week_01.csv"}, names)

	text, err := archive.ReadFile("week_01.csv")
	require.NoError(t, err)
	assert.NotContains(t, text, "nan")
	assert.NotContains(t, text, ";")

	signals, skipped, err := ParseSignals(text)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, signals, 1)
	assert.Nil(t, signals[0].Speed)
	assert.Nil(t, signals[0].FuelRate)
}

func TestSignalArchive_MissingArchive(t *testing.T) {
	archive := NewSignalArchive(t.TempDir())

	_, err := archive.FileNames()
	require.Error(t, err)
}
