package seasondata

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// readCSVRows reads a CSV season file and returns all rows, header included.
// Variable field counts are allowed; parseRow rejects short rows later.
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "seasondata: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "seasondata: read csv")
	}
	return rows, nil
}
