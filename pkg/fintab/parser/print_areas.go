package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// ExtractPrintAreas returns the print areas of a workbook keyed by sheet.
// Financial workbooks often pin the reported table with a print area.
func ExtractPrintAreas(f *excelize.File) (map[string][]models.Region, error) {
	result := make(map[string][]models.Region)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parseAreaReference(dn.RefersTo)
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result, nil
}

// parseAreaReference parses 'Sheet'!$A$1:$D$10[,...] into a sheet name and
// its regions.
func parseAreaReference(ref string) (string, []models.Region) {
	var sheetName string
	var areas []models.Region

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := strings.Trim(part[:idx], "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := parseRange(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// parseRange parses a range such as $A$1:$D$10.
func parseRange(rangeStr string) (models.Region, bool) {
	start, end, found := strings.Cut(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if !found {
		return models.Region{}, false
	}

	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.Region{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.Region{}, false
	}

	return models.Region{R1: r1, C1: c1, R2: r2, C2: c2}, true
}
