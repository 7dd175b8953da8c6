package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/territoire/internal/domain"
)

func herault() domain.Departement {
	ref := domain.DepartementRef{ID: 1, Code: "34", Nom: domain.StringPtr("Hérault")}
	return domain.Departement{
		ID:   1,
		Code: "34",
		Nom:  ref.Nom,
		Villes: []domain.Ville{
			{ID: 1, Nom: "Montpellier", NbHabitants: 285000, Departement: ref},
			{ID: 2, Nom: "Sète", NbHabitants: 44000, Departement: ref},
		},
	}
}

func TestPDFFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "departement_2A_20240309_140507.pdf", PDFFilename("2A", at))
}

func TestDepartementPDF(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, DepartementPDF(&buf, herault(), at))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	var empty bytes.Buffer
	require.NoError(t, DepartementPDF(&empty, domain.Departement{ID: 2, Code: "99"}, at))
	assert.True(t, bytes.HasPrefix(empty.Bytes(), []byte("%PDF-")))
}

func TestVillesCSV(t *testing.T) {
	villes := herault().Villes
	villes = append(villes, domain.Ville{
		ID:          3,
		Nom:         `Saint-Jean, "le Vieux"`,
		NbHabitants: 1200,
		Departement: domain.DepartementRef{ID: 4, Code: "99"},
	})

	var buf bytes.Buffer
	require.NoError(t, VillesCSV(&buf, villes))
	assert.Equal(t,
		"Nom Ville,Population,Code Département,Nom Département\n"+
			"Montpellier,285000,34,Hérault\n"+
			"Sète,44000,34,Hérault\n"+
			`"Saint-Jean, ""le Vieux""",1200,99,`+"\n",
		buf.String())
}

func TestVillesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, VillesCSV(&buf, nil))
	assert.Equal(t, "Nom Ville,Population,Code Département,Nom Département\n", buf.String())
}

func TestGroupThousands(t *testing.T) {
	for n, want := range map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1 000",
		285000:   "285 000",
		12345678: "12 345 678",
		-4500:    "-4 500",
	} {
		assert.Equal(t, want, groupThousands(n))
	}
}
