package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jbweber/homelab/territoire/internal/domain"
)

// CSVFilename is the attachment name of the villes export.
const CSVFilename = "villes.csv"

var villesHeader = []string{"Nom Ville", "Population", "Code Département", "Nom Département"}

// VillesCSV writes one row per ville after the header. Fields are quoted
// when they contain separators, quotes or line breaks.
func VillesCSV(w io.Writer, villes []domain.Ville) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(villesHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, v := range villes {
		record := []string{
			v.Nom,
			strconv.Itoa(v.NbHabitants),
			v.Departement.Code,
			domain.StringValue(v.Departement.Nom),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for ville %d: %w", v.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
