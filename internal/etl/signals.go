// Package etl decodes the raw eVED/VED source files into typed records.
package etl

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/spatial"
)

// signalArchivePath is the archive location inside the cloned eVED repository.
const signalArchivePath = "eved/data/eVED.zip"

// SignalArchive reads the per-file trip CSVs out of the eVED zip archive.
type SignalArchive struct {
	path string
}

// NewSignalArchive points at the eVED archive under the repository path.
func NewSignalArchive(repoPath string) *SignalArchive {
	return &SignalArchive{path: repoPath + "/" + signalArchivePath}
}

// FileNames lists the CSV members of the archive.
func (a *SignalArchive) FileNames() ([]string, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open signal archive %s: %w", a.path, err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadFile extracts one archive member's CSV text, sanitized for parsing:
// the dataset marks missing readings with a literal "nan" and carries stray
// ';' separators, both of which are stripped before the CSV reader sees
// the text.
func (a *SignalArchive) ReadFile(name string) (string, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return "", fmt.Errorf("failed to open signal archive %s: %w", a.path, err)
	}
	defer r.Close()

	f, err := r.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open archive member %s: %w", name, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read archive member %s: %w", name, err)
	}

	text := string(raw)
	text = strings.ReplaceAll(text, "nan", "")
	text = strings.ReplaceAll(text, ";", "")
	return text, nil
}

// ParseSignals decodes sanitized CSV text into signal records. Rows that
// fail type coercion are skipped and counted, not fatal; only a broken
// header is an error. The h3_12 cell of each record is derived from its
// matched coordinate.
func ParseSignals(csvText string) ([]models.Signal, int, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var signals []models.Signal
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		signal, err := parseSignalRow(cols, record)
		if err != nil {
			skipped++
			continue
		}
		signals = append(signals, *signal)
	}

	return signals, skipped, nil
}

// rowReader resolves named fields of one CSV record.
type rowReader struct {
	cols   map[string]int
	record []string
}

func (r rowReader) field(name string) string {
	idx, ok := r.cols[name]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

// float parses a required float column.
func (r rowReader) float(name string) (float64, error) {
	text := r.field(name)
	if text == "" {
		return 0, fmt.Errorf("column %q is empty", name)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

// optFloat parses an optional float column; empty means absent.
func (r rowReader) optFloat(name string) (*float64, error) {
	text := r.field(name)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return &v, nil
}

// optInt parses an optional integral column stored as a float in the source.
func (r rowReader) optInt(name string) (*int64, error) {
	f, err := r.optFloat(name)
	if err != nil || f == nil {
		return nil, err
	}
	v := int64(*f)
	return &v, nil
}

// optString returns an optional text column; empty means absent.
func (r rowReader) optString(name string) *string {
	text := r.field(name)
	if text == "" {
		return nil
	}
	return &text
}

// parseSignalRow decodes one CSV record. The column names follow the eVED
// headers verbatim, including the dataset's "Matchted Latitude" typo.
func parseSignalRow(cols map[string]int, record []string) (*models.Signal, error) {
	r := rowReader{cols: cols, record: record}

	vehicleID, err := r.float("VehId")
	if err != nil {
		return nil, err
	}
	tripID, err := r.float("Trip")
	if err != nil {
		return nil, err
	}
	timeStamp, err := r.float("Timestamp(ms)")
	if err != nil {
		return nil, err
	}
	dayNum, err := r.float("DayNum")
	if err != nil {
		return nil, err
	}
	latitude, err := r.float("Latitude[deg]")
	if err != nil {
		return nil, err
	}
	longitude, err := r.float("Longitude[deg]")
	if err != nil {
		return nil, err
	}
	matchLat, err := r.float("Matchted Latitude[deg]")
	if err != nil {
		return nil, err
	}
	matchLon, err := r.float("Matched Longitude[deg]")
	if err != nil {
		return nil, err
	}
	matchType, err := r.float("Match Type")
	if err != nil {
		return nil, err
	}

	signal := models.Signal{
		DayNum:         dayNum,
		VehicleID:      int64(vehicleID),
		TripID:         int64(tripID),
		TimeStamp:      int64(timeStamp),
		Latitude:       latitude,
		Longitude:      longitude,
		MatchLatitude:  matchLat,
		MatchLongitude: matchLon,
		MatchType:      matchType,
		H3Cell:         spatial.CellAt(matchLat, matchLon),
	}

	optFloats := []struct {
		name string
		dst  **float64
	}{
		{"Vehicle Speed[km/h]", &signal.Speed},
		{"MAF[g/sec]", &signal.MAF},
		{"Engine RPM[RPM]", &signal.RPM},
		{"Absolute Load[%]", &signal.AbsLoad},
		{"OAT[DegC]", &signal.OAT},
		{"Fuel Rate[L/hr]", &signal.FuelRate},
		{"Air Conditioning Power[kW]", &signal.ACPowerKW},
		{"Air Conditioning Power[Watts]", &signal.ACPowerW},
		{"Heater Power[Watts]", &signal.HeaterPowerW},
		{"HV Battery Current[A]", &signal.HVBatteryCurrent},
		{"HV Battery SOC[%]", &signal.HVBatterySOC},
		{"HV Battery Voltage[V]", &signal.HVBatteryVoltage},
		{"Short Term Fuel Trim Bank 1[%]", &signal.ShortFuelTrimB1},
		{"Short Term Fuel Trim Bank 2[%]", &signal.ShortFuelTrimB2},
		{"Long Term Fuel Trim Bank 1[%]", &signal.LongFuelTrimB1},
		{"Long Term Fuel Trim Bank 2[%]", &signal.LongFuelTrimB2},
		{"Elevation Raw[m]", &signal.Elevation},
		{"Elevation Smoothed[m]", &signal.ElevationSmooth},
		{"Gradient", &signal.Gradient},
		{"Energy_Consumption", &signal.EnergyConsumption},
		{"Class of Speed Limit", &signal.SpeedLimitClass},
	}
	for _, c := range optFloats {
		v, err := r.optFloat(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = v
	}

	if signal.SpeedLimitDirection, err = r.optInt("Speed Limit Direction[km/h]"); err != nil {
		return nil, err
	}
	if signal.Intersection, err = r.optInt("Intersection"); err != nil {
		return nil, err
	}
	if signal.BusStop, err = r.optInt("Bus Stops"); err != nil {
		return nil, err
	}
	signal.SpeedLimit = r.optString("Speed Limit[km/h]")
	signal.FocusPoints = r.optString("Focus Points")

	return &signal, nil
}
