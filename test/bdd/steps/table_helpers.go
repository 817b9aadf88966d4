package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// getCellValue finds a row's cell by the header name in the first table row
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

func getFloatCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (float64, error) {
	raw := getCellValue(table, row, columnName)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", columnName, raw)
	}
	return v, nil
}

func getIntCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (int, error) {
	raw := getCellValue(table, row, columnName)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", columnName, raw)
	}
	return v, nil
}

// parseDayList reads a comma separated list like "0,7,14"
func parseDayList(raw string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid day %q in %q", part, raw)
		}
		days = append(days, d)
	}
	return days, nil
}

func approxEqual(want, got, tolerance float64) bool {
	diff := want - got
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
