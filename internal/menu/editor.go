package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattgrange/winescout/internal/common"
	"github.com/mattgrange/winescout/internal/entity"
)

// Columns lists the editable menu table columns in display order.
var Columns = []string{
	"id", "producer", "name", "type", "main_type",
	"region", "country", "vintage", "price", "size",
}

// SetField overwrites one cell of the in-memory table, addressed by 0-based
// row and column name. It is the only mutation records undergo after
// extraction.
func SetField(records []entity.WineRecord, row int, column, value string) error {
	if row < 0 || row >= len(records) {
		return fmt.Errorf("%w: row %d out of range (0..%d)", common.ErrInvalidInput, row, len(records)-1)
	}
	r := &records[row]
	switch column {
	case "id":
		r.ID = value
	case "producer":
		r.Producer = value
	case "name":
		r.Name = value
	case "type":
		r.Type = value
	case "main_type":
		r.MainType = value
	case "region":
		r.Region = value
	case "country":
		r.Country = value
	case "vintage":
		r.Vintage = value
	case "price":
		r.Price = value
	case "size":
		r.Size = value
	default:
		return fmt.Errorf("%w: unknown column %q", common.ErrInvalidInput, column)
	}
	return nil
}

// fieldValue reads one cell by column name; used by the CSV and XLSX writers.
func fieldValue(r entity.WineRecord, column string) string {
	switch column {
	case "id":
		return r.ID
	case "producer":
		return r.Producer
	case "name":
		return r.Name
	case "type":
		return r.Type
	case "main_type":
		return r.MainType
	case "region":
		return r.Region
	case "country":
		return r.Country
	case "vintage":
		return r.Vintage
	case "price":
		return r.Price
	case "size":
		return r.Size
	}
	return ""
}

// RunEditor walks the operator through row/column corrections until they
// answer "no". It mutates records in place and re-prints the table after each
// edit, mirroring the original review loop.
func RunEditor(in io.Reader, out io.Writer, records []entity.WineRecord) {
	scanner := bufio.NewScanner(in)
	printTable(out, records)

	for {
		fmt.Fprint(out, "\nWould you like to make any corrections? (yes/no): ")
		if !scanner.Scan() {
			return
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "no":
			return
		case "yes":
			fmt.Fprintf(out, "Columns: %s\n", strings.Join(Columns, ", "))
			fmt.Fprint(out, "Enter column name to edit: ")
			if !scanner.Scan() {
				return
			}
			column := strings.TrimSpace(scanner.Text())

			fmt.Fprint(out, "Enter row number to edit (0-based index): ")
			if !scanner.Scan() {
				return
			}
			row, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil {
				fmt.Fprintf(out, "Error making edit: %v\n", err)
				continue
			}

			fmt.Fprint(out, "Enter new value: ")
			if !scanner.Scan() {
				return
			}
			value := scanner.Text()

			if err := SetField(records, row, column, value); err != nil {
				fmt.Fprintf(out, "Error making edit: %v\n", err)
				continue
			}
			printTable(out, records)
		default:
			fmt.Fprintln(out, "Please enter 'yes' or 'no'")
		}
	}
}

func printTable(out io.Writer, records []entity.WineRecord) {
	fmt.Fprintln(out, strings.Join(Columns, " | "))
	for i, r := range records {
		cells := make([]string, len(Columns))
		for j, col := range Columns {
			cells[j] = fieldValue(r, col)
		}
		fmt.Fprintf(out, "%d: %s\n", i, strings.Join(cells, " | "))
	}
}
