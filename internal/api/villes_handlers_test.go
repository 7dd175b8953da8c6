package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/service"
)

func montpellier() domain.Ville {
	nom := "Hérault"
	return domain.Ville{
		ID:          10,
		Nom:         "Montpellier",
		NbHabitants: 285000,
		Departement: domain.DepartementRef{ID: 1, Code: "34", Nom: &nom},
	}
}

func TestVilles_Get(t *testing.T) {
	s := newTestServer(t)
	s.villes.EXPECT().Get(gomock.Any(), int64(10)).Return(montpellier(), nil)

	w := s.do(http.MethodGet, "/api/v0/villes/10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.VilleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Montpellier", got.Nom)
	require.NotNil(t, got.Departement)
	assert.Equal(t, "34", got.Departement.Code)
}

func TestVilles_Create(t *testing.T) {
	s := newTestServer(t)
	in := domain.VilleInput{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"}
	s.villes.EXPECT().Create(gomock.Any(), in).Return(montpellier(), nil)

	w := s.do(http.MethodPost, "/api/v0/villes", `{"nom":"Montpellier","nbHabitants":285000,"codeDepartement":"34"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	s.villes.EXPECT().Create(gomock.Any(), in).Return(domain.Ville{}, domain.AlreadyExists("La ville Montpellier existe déjà"))
	w = s.do(http.MethodPost, "/api/v0/villes", `{"nom":"Montpellier","nbHabitants":285000,"codeDepartement":"34"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v0/villes", `[1, 2`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVilles_UpdatePopulation(t *testing.T) {
	s := newTestServer(t)
	updated := montpellier()
	updated.NbHabitants = 300000
	s.villes.EXPECT().UpdatePopulation(gomock.Any(), int64(10), 300000).Return(updated, nil)
	s.villes.EXPECT().UpdatePopulation(gomock.Any(), int64(10), 0).
		Return(domain.Ville{}, domain.ConstraintViolation("La population doit être positive"))

	w := s.do(http.MethodPut, "/api/v0/villes/10/population?nouveauNb=300000", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.VilleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 300000, got.NbHabitants)

	w = s.do(http.MethodPut, "/api/v0/villes/10/population?nouveauNb=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONSTRAINT_VIOLATION", decodeError(t, w).Code)

	w = s.do(http.MethodPut, "/api/v0/villes/10/population", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATA", decodeError(t, w).Code)
}

func TestVilles_AdvancedSearch(t *testing.T) {
	s := newTestServer(t)
	min, max := 1000, 500000
	s.villes.EXPECT().AdvancedSearch(gomock.Any(), service.SearchCriteria{
		MinPopulation:   &min,
		MaxPopulation:   &max,
		CodeDepartement: "34",
	}).Return([]domain.Ville{montpellier()}, nil)
	s.villes.EXPECT().AdvancedSearch(gomock.Any(), service.SearchCriteria{Nom: "mont"}).
		Return([]domain.Ville{}, nil)

	w := s.do(http.MethodGet, "/api/v0/villes/search/avancee?minPopulation=1000&maxPopulation=500000&codeDepartement=34", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []dto.VilleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)

	w = s.do(http.MethodGet, "/api/v0/villes/search/avancee?nom=mont", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	w = s.do(http.MethodGet, "/api/v0/villes/search/avancee?minPopulation=beaucoup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVilles_ByDepartement(t *testing.T) {
	s := newTestServer(t)
	min := 100000
	s.villes.EXPECT().ByDepartement(gomock.Any(), "34").Return([]domain.Ville{montpellier()}, nil)
	s.villes.EXPECT().ByDepartementAndMinPopulation(gomock.Any(), "34", &min).
		Return([]domain.Ville{montpellier()}, nil)
	s.villes.EXPECT().MostPopulated(gomock.Any(), "48").
		Return(domain.Ville{}, domain.NotFound("Aucune ville dans le département 48"))

	w := s.do(http.MethodGet, "/api/v0/villes/departement/34", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v0/villes/departement/34?min=100000", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v0/villes/departement/48/plus-peuplee", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVilles_QuickCreateAndImport(t *testing.T) {
	s := newTestServer(t)
	s.villes.EXPECT().QuickCreate(gomock.Any(), "Lodève", 7500, "34").Return(montpellier(), nil)
	s.villes.EXPECT().Import(gomock.Any(), []domain.VilleInput{
		{Nom: "Lunel", NbHabitants: 26000, CodeDepartement: "34"},
		{Nom: "Agde", NbHabitants: 29000, DepartementID: 1},
	}).Return([]domain.Ville{montpellier(), montpellier()}, nil)

	w := s.do(http.MethodPost, "/api/v0/villes/creation-rapide?nom=Lod%C3%A8ve&nbHabitants=7500&codeDepartement=34", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/v0/villes/creation-rapide?nom=Lodeve&nbHabitants=beaucoup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v0/villes/import",
		`[{"nom":"Lunel","nbHabitants":26000,"codeDepartement":"34"},{"nom":"Agde","nbHabitants":29000,"departementId":1}]`)
	require.Equal(t, http.StatusCreated, w.Code)
	var got []dto.VilleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestVilles_Delete(t *testing.T) {
	s := newTestServer(t)
	s.villes.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)

	w := s.do(http.MethodDelete, "/api/v0/villes/10", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestVilles_ExportCSV(t *testing.T) {
	s := newTestServer(t)
	s.villes.EXPECT().PopulationGreaterThan(gomock.Any(), 0).Return([]domain.Ville{montpellier()}, nil)
	s.villes.EXPECT().PopulationGreaterThan(gomock.Any(), 1000000).Return(nil, nil)

	w := s.do(http.MethodGet, "/api/v0/villes/export/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="villes.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t,
		"Nom Ville,Population,Code Département,Nom Département\nMontpellier,285000,34,Hérault\n",
		w.Body.String())

	w = s.do(http.MethodGet, "/api/v0/villes/export/csv?min=1000000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "\n"))

	metricsBody := s.do(http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, metricsBody, `territoire_exports_total{format="csv"} 2`)
}
