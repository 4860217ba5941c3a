package etl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joaofig/evedb-go/internal/models"
)

// The VED static data ships as two workbooks, one for combustion and hybrid
// vehicles and one for plug-in hybrids and EVs.
var vehicleWorkbookPaths = []string{
	"ved/Data/VED_Static_Data_ICE&HEV.xlsx",
	"ved/Data/VED_Static_Data_PHEV&EV.xlsx",
}

// vehicleSheet is the worksheet holding the vehicle table.
const vehicleSheet = "Sheet1"

// noDataString decodes the workbook's "NO DATA" sentinel to an absent value.
func noDataString(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "NO DATA") {
		return nil
	}
	return &text
}

// noDataInt decodes an integer cell carrying the "NO DATA" sentinel.
func noDataInt(text string) (*int64, error) {
	s := noDataString(text)
	if s == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer cell: %w", err)
	}
	v := int64(f)
	return &v, nil
}

// ReadVehicles decodes the static vehicle records from both VED workbooks
// under the repository path.
func ReadVehicles(repoPath string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	for _, rel := range vehicleWorkbookPaths {
		path := repoPath + "/" + rel
		batch, err := readVehicleWorkbook(path)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, batch...)
	}
	return vehicles, nil
}

// readVehicleWorkbook decodes one workbook's vehicle table. The first row
// is the header and is skipped.
func readVehicleWorkbook(path string) ([]models.Vehicle, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(vehicleSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", vehicleSheet, path, err)
	}

	var vehicles []models.Vehicle
	for i, row := range rows {
		if i == 0 {
			continue
		}
		vehicle, err := parseVehicleRow(row)
		if err != nil {
			return nil, fmt.Errorf("workbook %s row %d: %w", path, i+1, err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	return vehicles, nil
}

func parseVehicleRow(row []string) (*models.Vehicle, error) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	idText := strings.TrimSpace(cell(0))
	if idText == "" {
		return nil, fmt.Errorf("vehicle id cell is empty")
	}
	idFloat, err := strconv.ParseFloat(idText, 64)
	if err != nil {
		return nil, fmt.Errorf("vehicle id cannot be parsed: %w", err)
	}

	weight, err := noDataInt(cell(6))
	if err != nil {
		return nil, fmt.Errorf("weight cell: %w", err)
	}

	return &models.Vehicle{
		VehicleID:    int64(idFloat),
		VehicleType:  noDataString(cell(1)),
		VehicleClass: noDataString(cell(2)),
		Engine:       noDataString(cell(3)),
		Transmission: noDataString(cell(4)),
		DriveWheels:  noDataString(cell(5)),
		Weight:       weight,
	}, nil
}
