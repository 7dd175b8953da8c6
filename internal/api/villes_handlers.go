package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/export"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/service"
)

// Villes groups the ville handlers.
type Villes struct {
	store   VillesStore
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewVilles(store VillesStore, m *metrics.Metrics, log *logger.Logger) *Villes {
	if log == nil {
		log = logger.NewNop()
	}
	return &Villes{store: store, metrics: m, log: log}
}

// RegisterVillesRoutes mounts the ville endpoints on r.
func RegisterVillesRoutes(r chi.Router, v *Villes) {
	r.Route("/api/v0/villes", func(r chi.Router) {
		r.Get("/", v.ListHandler)
		r.Post("/", v.CreateHandler)
		r.Get("/count", v.CountHandler)
		r.Post("/creation-rapide", v.QuickCreateHandler)
		r.Post("/import", v.ImportHandler)
		r.Get("/export/csv", v.ExportCSVHandler)

		r.Route("/search", func(r chi.Router) {
			r.Get("/nom", v.GetByNomHandler)
			r.Get("/nom-contient", v.NomContainingHandler)
			r.Get("/nom-commence", v.NomStartingWithHandler)
			r.Get("/population-min", v.PopulationMinHandler)
			r.Get("/population-plage", v.PopulationRangeHandler)
			r.Get("/avancee", v.AdvancedSearchHandler)
		})

		r.Route("/departement/{code}", func(r chi.Router) {
			r.Get("/", v.ByDepartementHandler)
			r.Get("/plage", v.ByDepartementRangeHandler)
			r.Get("/top", v.TopHandler)
			r.Get("/stats", v.StatsHandler)
			r.Get("/plus-peuplee", v.MostPopulatedHandler)
		})

		r.Get("/{id}", v.GetHandler)
		r.Put("/{id}", v.UpdateHandler)
		r.Delete("/{id}", v.DeleteHandler)
		r.Put("/{id}/population", v.UpdatePopulationHandler)
	})
}

// ListHandler handles GET /api/v0/villes?page=&size=&sort=.
func (v *Villes) ListHandler(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	page, err := v.store.ListPaged(r.Context(), req)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, http.StatusOK, dto.FromPage(page, dto.FromVilles))
}

func (v *Villes) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	ville, err := v.store.Get(r.Context(), id)
	v.respond(w, r, http.StatusOK, ville, err)
}

func (v *Villes) GetByNomHandler(w http.ResponseWriter, r *http.Request) {
	nom, err := requiredQuery(r, "nom")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	ville, err := v.store.GetByNom(r.Context(), nom)
	v.respond(w, r, http.StatusOK, ville, err)
}

func (v *Villes) NomContainingHandler(w http.ResponseWriter, r *http.Request) {
	nom, err := requiredQuery(r, "nom")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.NomContaining(r.Context(), nom)
	v.respondList(w, r, villes, err)
}

func (v *Villes) NomStartingWithHandler(w http.ResponseWriter, r *http.Request) {
	prefix, err := requiredQuery(r, "prefix")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.NomStartingWith(r.Context(), prefix)
	v.respondList(w, r, villes, err)
}

func (v *Villes) PopulationMinHandler(w http.ResponseWriter, r *http.Request) {
	min, err := requiredQueryInt(r, "min")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.PopulationGreaterThan(r.Context(), min)
	v.respondList(w, r, villes, err)
}

func (v *Villes) PopulationRangeHandler(w http.ResponseWriter, r *http.Request) {
	min, max, err := populationRange(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.PopulationBetween(r.Context(), min, max)
	v.respondList(w, r, villes, err)
}

// AdvancedSearchHandler handles
// GET /api/v0/villes/search/avancee?nom=&minPopulation=&maxPopulation=&codeDepartement=.
func (v *Villes) AdvancedSearchHandler(w http.ResponseWriter, r *http.Request) {
	criteria := service.SearchCriteria{
		Nom:             r.URL.Query().Get("nom"),
		CodeDepartement: r.URL.Query().Get("codeDepartement"),
	}
	for name, dst := range map[string]**int{
		"minPopulation": &criteria.MinPopulation,
		"maxPopulation": &criteria.MaxPopulation,
	} {
		n, ok, err := queryInt(r, name)
		if err != nil {
			writeError(w, r, v.log, err)
			return
		}
		if ok {
			*dst = &n
		}
	}

	villes, err := v.store.AdvancedSearch(r.Context(), criteria)
	v.respondList(w, r, villes, err)
}

func (v *Villes) CountHandler(w http.ResponseWriter, r *http.Request) {
	n, err := v.store.Count(r.Context())
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, http.StatusOK, n)
}

// ByDepartementHandler handles GET /api/v0/villes/departement/{code}?min=.
// Without min every ville of the département is listed.
func (v *Villes) ByDepartementHandler(w http.ResponseWriter, r *http.Request) {
	min, ok, err := queryInt(r, "min")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	code := chi.URLParam(r, "code")
	var villes []domain.Ville
	if ok {
		villes, err = v.store.ByDepartementAndMinPopulation(r.Context(), code, &min)
	} else {
		villes, err = v.store.ByDepartement(r.Context(), code)
	}
	v.respondList(w, r, villes, err)
}

func (v *Villes) ByDepartementRangeHandler(w http.ResponseWriter, r *http.Request) {
	min, max, err := populationRange(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.ByDepartementAndPopulationRange(r.Context(), chi.URLParam(r, "code"), min, max)
	v.respondList(w, r, villes, err)
}

func (v *Villes) TopHandler(w http.ResponseWriter, r *http.Request) {
	n, err := queryIntDefault(r, "n", 10)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.TopByDepartement(r.Context(), chi.URLParam(r, "code"), n)
	v.respondList(w, r, villes, err)
}

func (v *Villes) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := v.store.DepartementStats(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, http.StatusOK, stats)
}

func (v *Villes) MostPopulatedHandler(w http.ResponseWriter, r *http.Request) {
	ville, err := v.store.MostPopulated(r.Context(), chi.URLParam(r, "code"))
	v.respond(w, r, http.StatusOK, ville, err)
}

// CreateHandler handles POST /api/v0/villes.
//
// Request: JSON body {"nom", "nbHabitants", "departementId" or "codeDepartement"}.
// Response: 201 with the ville.
func (v *Villes) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.VilleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, v.log, err)
		return
	}
	ville, err := v.store.Create(r.Context(), in)
	v.respond(w, r, http.StatusCreated, ville, err)
}

// QuickCreateHandler handles POST /api/v0/villes/creation-rapide?nom=&nbHabitants=&codeDepartement=.
func (v *Villes) QuickCreateHandler(w http.ResponseWriter, r *http.Request) {
	nb, err := requiredQueryInt(r, "nbHabitants")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	q := r.URL.Query()
	ville, err := v.store.QuickCreate(r.Context(), q.Get("nom"), nb, q.Get("codeDepartement"))
	v.respond(w, r, http.StatusCreated, ville, err)
}

// ImportHandler handles POST /api/v0/villes/import with a JSON array. The
// batch is stored entirely or not at all.
func (v *Villes) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var inputs []domain.VilleInput
	if err := decodeJSON(r, &inputs); err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.Import(r.Context(), inputs)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, http.StatusCreated, dto.FromVilles(villes))
}

func (v *Villes) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	var in domain.VilleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, v.log, err)
		return
	}
	ville, err := v.store.Update(r.Context(), id, in)
	v.respond(w, r, http.StatusOK, ville, err)
}

// UpdatePopulationHandler handles PUT /api/v0/villes/{id}/population?nouveauNb=.
func (v *Villes) UpdatePopulationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	nb, err := requiredQueryInt(r, "nouveauNb")
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	ville, err := v.store.UpdatePopulation(r.Context(), id, nb)
	v.respond(w, r, http.StatusOK, ville, err)
}

func (v *Villes) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	if err := v.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, v.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSVHandler handles GET /api/v0/villes/export/csv?min=. Villes with
// a population strictly above min (default 0) are exported.
func (v *Villes) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	min, err := queryIntDefault(r, "min", 0)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	villes, err := v.store.PopulationGreaterThan(r.Context(), min)
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.VillesCSV(&buf, villes); err != nil {
		writeError(w, r, v.log, err)
		return
	}
	v.metrics.IncrementExports("csv")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		v.log.Warn("failed to write csv", "error", err)
	}
}

func (v *Villes) respond(w http.ResponseWriter, r *http.Request, status int, ville domain.Ville, err error) {
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, status, dto.FromVille(&ville))
}

func (v *Villes) respondList(w http.ResponseWriter, r *http.Request, villes []domain.Ville, err error) {
	if err != nil {
		writeError(w, r, v.log, err)
		return
	}
	writeJSON(w, v.log, http.StatusOK, dto.FromVilles(villes))
}
