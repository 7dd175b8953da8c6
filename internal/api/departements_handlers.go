package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/export"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
)

// Departements groups the département handlers.
type Departements struct {
	store   DepartementsStore
	villes  VillesStore
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewDepartements(store DepartementsStore, villes VillesStore, m *metrics.Metrics, log *logger.Logger) *Departements {
	if log == nil {
		log = logger.NewNop()
	}
	return &Departements{store: store, villes: villes, metrics: m, log: log, now: time.Now}
}

// RegisterDepartementsRoutes mounts the département endpoints on r.
func RegisterDepartementsRoutes(r chi.Router, d *Departements) {
	r.Route("/api/v0/departements", func(r chi.Router) {
		r.Get("/", d.ListHandler)
		r.Post("/", d.CreateHandler)
		r.Get("/count", d.CountHandler)
		r.Get("/search", d.SearchHandler)
		r.Get("/search/nom", d.GetByNomHandler)
		r.Get("/avec-nom", d.listHandler(d.store.WithNom))
		r.Get("/sans-nom", d.listHandler(d.store.WithoutNom))
		r.Get("/avec-villes", d.listHandler(d.store.WithVilles))
		r.Get("/metropolitains", d.listHandler(d.store.Metropolitains))
		r.Get("/outre-mer", d.listHandler(d.store.OutreMer))
		r.Get("/corse", d.listHandler(d.store.Corse))
		r.Get("/min-villes", d.MinVillesHandler)
		r.Get("/min-population", d.MinPopulationHandler)
		r.Get("/code-commence", d.CodePrefixHandler)
		r.Get("/exists/code/{code}", d.ExistsByCodeHandler)
		r.Post("/creation-rapide", d.QuickCreateHandler)
		r.Put("/update-noms-manquants", d.FillMissingNomsHandler)

		r.Route("/code/{code}", func(r chi.Router) {
			r.Get("/", d.GetByCodeHandler)
			r.Put("/nom", d.UpdateNomHandler)
			r.Get("/villes", d.VillesByCodeHandler)
			r.Get("/villes/top", d.TopVillesHandler)
			r.Get("/villes/population", d.VillesMinPopulationHandler)
			r.Get("/villes/population-plage", d.VillesPopulationRangeHandler)
			r.Get("/stats", d.StatsHandler)
			r.Get("/population-totale", d.PopulationTotaleHandler)
			r.Get("/nombre-villes", d.NombreVillesHandler)
			r.Get("/export/pdf", d.pdfHandler("attachment"))
			r.Get("/preview/pdf", d.pdfHandler("inline"))
		})

		r.Get("/{id}", d.GetHandler)
		r.Put("/{id}", d.UpdateHandler)
		r.Delete("/{id}", d.DeleteHandler)
		r.Get("/{id}/villes", d.VillesHandler)
	})
}

// ListHandler handles GET /api/v0/departements?page=&size=&sort=.
func (d *Departements) ListHandler(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	page, err := d.store.ListPaged(r.Context(), req)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusOK, dto.FromPage(page, dto.FromDepartements))
}

func (d *Departements) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	dept, err := d.store.Get(r.Context(), id)
	d.respond(w, r, dept, err)
}

func (d *Departements) GetByCodeHandler(w http.ResponseWriter, r *http.Request) {
	dept, err := d.store.GetByCode(r.Context(), chi.URLParam(r, "code"))
	d.respond(w, r, dept, err)
}

func (d *Departements) GetByNomHandler(w http.ResponseWriter, r *http.Request) {
	nom, err := requiredQuery(r, "nom")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	dept, err := d.store.GetByNom(r.Context(), nom)
	d.respond(w, r, dept, err)
}

func (d *Departements) SearchHandler(w http.ResponseWriter, r *http.Request) {
	q, err := requiredQuery(r, "q")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	d.listHandler(func(ctx context.Context) ([]domain.Departement, error) {
		return d.store.Search(ctx, q)
	})(w, r)
}

func (d *Departements) MinVillesHandler(w http.ResponseWriter, r *http.Request) {
	min, err := requiredQueryInt(r, "min")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	d.listHandler(func(ctx context.Context) ([]domain.Departement, error) {
		return d.store.WithMinVilles(ctx, int64(min))
	})(w, r)
}

func (d *Departements) MinPopulationHandler(w http.ResponseWriter, r *http.Request) {
	min, err := requiredQueryInt(r, "min")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	d.listHandler(func(ctx context.Context) ([]domain.Departement, error) {
		return d.store.WithMinPopulation(ctx, int64(min))
	})(w, r)
}

func (d *Departements) CodePrefixHandler(w http.ResponseWriter, r *http.Request) {
	prefix, err := requiredQuery(r, "prefix")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	d.listHandler(func(ctx context.Context) ([]domain.Departement, error) {
		return d.store.ByCodePrefix(ctx, prefix)
	})(w, r)
}

func (d *Departements) CountHandler(w http.ResponseWriter, r *http.Request) {
	n, err := d.store.Count(r.Context())
	d.respondValue(w, r, n, err)
}

func (d *Departements) ExistsByCodeHandler(w http.ResponseWriter, r *http.Request) {
	ok, err := d.store.ExistsByCode(r.Context(), chi.URLParam(r, "code"))
	d.respondValue(w, r, ok, err)
}

// VillesHandler handles GET /api/v0/departements/{id}/villes.
func (d *Departements) VillesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	villes, err := d.store.Villes(r.Context(), id)
	d.respondVilles(w, r, villes, err)
}

// VillesByCodeHandler answers 404 for an unknown code.
func (d *Departements) VillesByCodeHandler(w http.ResponseWriter, r *http.Request) {
	dept, err := d.store.GetByCode(r.Context(), chi.URLParam(r, "code"))
	d.respondVilles(w, r, dept.Villes, err)
}

func (d *Departements) TopVillesHandler(w http.ResponseWriter, r *http.Request) {
	n, err := queryIntDefault(r, "n", 10)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	villes, err := d.villes.TopByDepartement(r.Context(), chi.URLParam(r, "code"), n)
	d.respondVilles(w, r, villes, err)
}

func (d *Departements) VillesMinPopulationHandler(w http.ResponseWriter, r *http.Request) {
	min, ok, err := queryInt(r, "min")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	var minPtr *int
	if ok {
		minPtr = &min
	}
	villes, err := d.villes.ByDepartementAndMinPopulation(r.Context(), chi.URLParam(r, "code"), minPtr)
	d.respondVilles(w, r, villes, err)
}

func (d *Departements) VillesPopulationRangeHandler(w http.ResponseWriter, r *http.Request) {
	min, max, err := populationRange(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	villes, err := d.villes.ByDepartementAndPopulationRange(r.Context(), chi.URLParam(r, "code"), min, max)
	d.respondVilles(w, r, villes, err)
}

func (d *Departements) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := d.store.Stats(r.Context(), chi.URLParam(r, "code"))
	d.respondValue(w, r, stats, err)
}

func (d *Departements) PopulationTotaleHandler(w http.ResponseWriter, r *http.Request) {
	n, err := d.store.PopulationTotale(r.Context(), chi.URLParam(r, "code"))
	d.respondValue(w, r, n, err)
}

func (d *Departements) NombreVillesHandler(w http.ResponseWriter, r *http.Request) {
	n, err := d.store.NombreVilles(r.Context(), chi.URLParam(r, "code"))
	d.respondValue(w, r, n, err)
}

// CreateHandler handles POST /api/v0/departements.
//
// Request: JSON body {"code", "nom"}. Response: 201 with the département.
func (d *Departements) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.DepartementInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, d.log, err)
		return
	}
	dept, err := d.store.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusCreated, dto.FromDepartement(&dept))
}

// QuickCreateHandler handles POST /api/v0/departements/creation-rapide?code=&nom=.
func (d *Departements) QuickCreateHandler(w http.ResponseWriter, r *http.Request) {
	code, err := requiredQuery(r, "code")
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	dept, err := d.store.QuickCreate(r.Context(), code, r.URL.Query().Get("nom"))
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusCreated, dto.FromDepartement(&dept))
}

func (d *Departements) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	var in domain.DepartementInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, d.log, err)
		return
	}
	dept, err := d.store.Update(r.Context(), id, in)
	d.respond(w, r, dept, err)
}

// UpdateNomHandler handles PUT /api/v0/departements/code/{code}/nom?nom=.
func (d *Departements) UpdateNomHandler(w http.ResponseWriter, r *http.Request) {
	dept, err := d.store.UpdateNom(r.Context(), chi.URLParam(r, "code"), r.URL.Query().Get("nom"))
	d.respond(w, r, dept, err)
}

// DeleteHandler answers 204, or 403 while the département owns villes.
func (d *Departements) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	if err := d.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, d.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (d *Departements) FillMissingNomsHandler(w http.ResponseWriter, r *http.Request) {
	n, err := d.store.FillMissingNoms(r.Context())
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusOK, map[string]any{
		"updated": n,
		"message": fmt.Sprintf("%d département(s) mis à jour", n),
	})
}

// pdfHandler renders the report of a département, either as a download or
// for display in the browser.
func (d *Departements) pdfHandler(disposition string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dept, err := d.store.GetByCode(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, r, d.log, err)
			return
		}

		at := d.now()
		var buf bytes.Buffer
		if err := export.DepartementPDF(&buf, dept, at); err != nil {
			writeError(w, r, d.log, err)
			return
		}
		d.metrics.IncrementExports("pdf")

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, export.PDFFilename(dept.Code, at)))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			d.log.Warn("failed to write pdf", "code", dept.Code, "error", err)
		}
	}
}

func (d *Departements) listHandler(find func(context.Context) ([]domain.Departement, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departements, err := find(r.Context())
		if err != nil {
			writeError(w, r, d.log, err)
			return
		}
		writeJSON(w, d.log, http.StatusOK, dto.FromDepartements(departements))
	}
}

func (d *Departements) respond(w http.ResponseWriter, r *http.Request, dept domain.Departement, err error) {
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusOK, dto.FromDepartement(&dept))
}

func (d *Departements) respondVilles(w http.ResponseWriter, r *http.Request, villes []domain.Ville, err error) {
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusOK, dto.FromVilles(villes))
}

func (d *Departements) respondValue(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		writeError(w, r, d.log, err)
		return
	}
	writeJSON(w, d.log, http.StatusOK, v)
}
