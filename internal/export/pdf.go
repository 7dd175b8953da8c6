// Package export renders départements and villes as downloadable documents.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jbweber/homelab/territoire/internal/domain"
)

// PDFFilename names the report of département code generated at at.
func PDFFilename(code string, at time.Time) string {
	return fmt.Sprintf("departement_%s_%s.pdf", code, at.Format("20060102_150405"))
}

// DepartementPDF writes the report of d, with its villes as loaded, to w.
func DepartementPDF(w io.Writer, d domain.Departement, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rapport Département - "+d.NomOrCode(), true)
	pdf.SetAuthor("territoire", false)
	pdf.SetCreationDate(generatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(64, 64, 64)
	pdf.CellFormat(0, 10, tr("Rapport Département - "+d.NomOrCode()), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, tr("Généré le : "+generatedAt.Format("02/01/2006 à 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section(pdf, tr, "Informations générales")
	pdf.SetFont("Helvetica", "", 11)
	line(pdf, tr, "Code du département : "+d.Code)
	line(pdf, tr, "Nom du département : "+d.NomOrCode())
	line(pdf, tr, "Nombre de villes : "+strconv.Itoa(d.NombreVilles()))
	pdf.Ln(4)

	section(pdf, tr, "Liste des villes")
	if len(d.Villes) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		line(pdf, tr, "Aucune ville enregistrée pour ce département.")
	} else {
		villesTable(pdf, tr, d.Villes)
	}
	pdf.Ln(4)

	section(pdf, tr, "Statistiques")
	pdf.SetFont("Helvetica", "", 11)
	total := d.PopulationTotale()
	line(pdf, tr, fmt.Sprintf("Population totale : %s habitants", groupThousands(total)))
	if n := d.NombreVilles(); n > 0 {
		line(pdf, tr, fmt.Sprintf("Population moyenne par ville : %s habitants", groupThousands(total/int64(n))))
		top := mostPopulated(d.Villes)
		line(pdf, tr, fmt.Sprintf("Ville la plus peuplée : %s (%s habitants)", top.Nom, groupThousands(int64(top.NbHabitants))))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf for departement %s: %w", d.Code, err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")
}

func line(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.CellFormat(0, 6, tr(text), "", 1, "L", false, 0, "")
}

func villesTable(pdf *fpdf.Fpdf, tr func(string) string, villes []domain.Ville) {
	const nomWidth, popWidth = 120.0, 60.0

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(70, 130, 180)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(nomWidth, 8, tr("Nom de la ville"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(popWidth, 8, tr("Population"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, v := range villes {
		pdf.CellFormat(nomWidth, 7, tr(v.Nom), "1", 0, "L", false, 0, "")
		pdf.CellFormat(popWidth, 7, groupThousands(int64(v.NbHabitants)), "1", 1, "R", false, 0, "")
	}
}

func mostPopulated(villes []domain.Ville) domain.Ville {
	top := villes[0]
	for _, v := range villes[1:] {
		if v.NbHabitants > top.NbHabitants {
			top = v
		}
	}
	return top
}

// groupThousands formats n with a space between groups of three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
