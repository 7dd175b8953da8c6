package service

import (
	"context"
	"encoding/json"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jbweber/homelab/territoire/internal/cache"
	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// DepartementService holds the rules applied around département reads and
// writes. Writes run in a single transaction each.
type DepartementService struct {
	ds           *datastore.Datastore
	departements repository.DepartementRepository
	villes       repository.VilleRepository
	cache        cache.Cache
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewDepartementService wires the service. A nil cache disables caching and
// a nil logger discards output.
func NewDepartementService(
	ds *datastore.Datastore,
	departements repository.DepartementRepository,
	villes repository.VilleRepository,
	c cache.Cache,
	m *metrics.Metrics,
	log *logger.Logger,
) *DepartementService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &DepartementService{
		ds:           ds,
		departements: departements,
		villes:       villes,
		cache:        c,
		metrics:      m,
		log:          log,
	}
}

// List returns every département with its villes.
func (s *DepartementService) List(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindAll)
}

// ListPaged returns one page of départements with their villes. The sort
// key defaults to "nom".
func (s *DepartementService) ListPaged(ctx context.Context, req repository.PageRequest) (repository.Page[domain.Departement], error) {
	if err := validatePageRequest(&req, "nom", repository.DepartementSortKeys()); err != nil {
		return repository.Page[domain.Departement]{}, err
	}

	page, err := s.departements.FindAllPaged(ctx, req)
	if err != nil {
		return repository.Page[domain.Departement]{}, classify(err, "page de départements")
	}
	if err := s.attachVilles(ctx, page.Content); err != nil {
		return repository.Page[domain.Departement]{}, err
	}
	return page, nil
}

func (s *DepartementService) Get(ctx context.Context, id int64) (domain.Departement, error) {
	d, err := s.departements.FindByID(ctx, id)
	if err != nil {
		return domain.Departement{}, classify(err, "Département %d", id)
	}
	d.Villes, err = s.villes.FindByDepartementID(ctx, d.ID)
	if err != nil {
		return domain.Departement{}, classify(err, "villes du département %d", id)
	}
	return d, nil
}

// GetByCode resolves a département by its code, ignoring case.
func (s *DepartementService) GetByCode(ctx context.Context, code string) (domain.Departement, error) {
	code = domain.NormalizeCode(code)
	d, err := s.departements.FindByCode(ctx, code)
	if err != nil {
		return domain.Departement{}, classify(err, "Département avec le code %s", code)
	}
	return d, nil
}

func (s *DepartementService) GetByNom(ctx context.Context, nom string) (domain.Departement, error) {
	d, err := s.departements.FindByNom(ctx, nom)
	if err != nil {
		return domain.Departement{}, classify(err, "Département avec le nom %s", nom)
	}
	d.Villes, err = s.villes.FindByDepartementID(ctx, d.ID)
	if err != nil {
		return domain.Departement{}, classify(err, "villes du département %s", d.Code)
	}
	return d, nil
}

func (s *DepartementService) Search(ctx context.Context, term string) ([]domain.Departement, error) {
	return s.project(ctx, func(ctx context.Context) ([]domain.Departement, error) {
		return s.departements.Search(ctx, term)
	})
}

func (s *DepartementService) WithNom(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindWithNom)
}

func (s *DepartementService) WithoutNom(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindWithoutNom)
}

func (s *DepartementService) WithVilles(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindWithVilles)
}

func (s *DepartementService) WithMinVilles(ctx context.Context, min int64) ([]domain.Departement, error) {
	return s.project(ctx, func(ctx context.Context) ([]domain.Departement, error) {
		return s.departements.FindWithMinVilles(ctx, min)
	})
}

func (s *DepartementService) WithMinPopulation(ctx context.Context, min int64) ([]domain.Departement, error) {
	return s.project(ctx, func(ctx context.Context) ([]domain.Departement, error) {
		return s.departements.FindWithMinPopulation(ctx, min)
	})
}

// Metropolitains excludes overseas codes and every code starting with "2".
func (s *DepartementService) Metropolitains(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindMetropolitains)
}

func (s *DepartementService) OutreMer(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindOutreMer)
}

func (s *DepartementService) Corse(ctx context.Context) ([]domain.Departement, error) {
	return s.project(ctx, s.departements.FindCorse)
}

func (s *DepartementService) ByCodePrefix(ctx context.Context, prefix string) ([]domain.Departement, error) {
	return s.project(ctx, func(ctx context.Context) ([]domain.Departement, error) {
		return s.departements.FindByCodePrefix(ctx, prefix)
	})
}

func (s *DepartementService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	ok, err := s.departements.ExistsByCode(ctx, code)
	if err != nil {
		return false, classify(err, "Département avec le code %s", code)
	}
	return ok, nil
}

func (s *DepartementService) Count(ctx context.Context) (int64, error) {
	n, err := s.departements.Count(ctx)
	if err != nil {
		return 0, classify(err, "départements")
	}
	return n, nil
}

// Villes returns the villes of département id, most populated first.
func (s *DepartementService) Villes(ctx context.Context, id int64) ([]domain.Ville, error) {
	ok, err := s.departements.ExistsByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Département %d", id)
	}
	if !ok {
		return nil, domain.NotFound("Département %d introuvable", id)
	}

	villes, err := s.villes.FindByDepartementID(ctx, id)
	if err != nil {
		return nil, classify(err, "villes du département %d", id)
	}
	return villes, nil
}

// Create inserts a new département after validating it.
func (s *DepartementService) Create(ctx context.Context, in domain.DepartementInput) (domain.Departement, error) {
	in.Normalize()
	if err := domain.Validate(in); err != nil {
		return domain.Departement{}, err
	}

	var created domain.Departement
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		exists, err := s.departements.ExistsByCode(ctx, in.Code)
		if err != nil {
			return classify(err, "Département avec le code %s", in.Code)
		}
		if exists {
			return domain.AlreadyExists("Un département avec le code %s existe déjà", in.Code)
		}

		created, err = s.departements.Save(ctx, domain.Departement{Code: in.Code, Nom: in.Nom})
		return classify(err, "Département avec le code %s", in.Code)
	})
	if err != nil {
		return domain.Departement{}, err
	}

	s.metrics.IncrementDepartementsCreated()
	s.invalidate(ctx, created.Code)
	s.log.Info("departement created", "id", created.ID, "code", created.Code)

	created.Villes = []domain.Ville{}
	return created, nil
}

// QuickCreate creates a département from a code and an optional name.
func (s *DepartementService) QuickCreate(ctx context.Context, code, nom string) (domain.Departement, error) {
	return s.Create(ctx, domain.DepartementInput{Code: code, Nom: domain.StringPtr(nom)})
}

// Update replaces the code and name of département id. A changed code must
// be valid and free.
func (s *DepartementService) Update(ctx context.Context, id int64, in domain.DepartementInput) (domain.Departement, error) {
	in.Normalize()
	if err := domain.Validate(in); err != nil {
		return domain.Departement{}, err
	}

	var previous string
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		current, err := s.departements.FindByID(ctx, id)
		if err != nil {
			return classify(err, "Département %d", id)
		}
		previous = current.Code

		if current.Code != in.Code {
			exists, err := s.departements.ExistsByCode(ctx, in.Code)
			if err != nil {
				return classify(err, "Département avec le code %s", in.Code)
			}
			if exists {
				return domain.AlreadyExists("Un département avec le code %s existe déjà", in.Code)
			}
		}

		_, err = s.departements.Save(ctx, domain.Departement{ID: id, Code: in.Code, Nom: in.Nom})
		return classify(err, "Département %d", id)
	})
	if err != nil {
		return domain.Departement{}, err
	}

	s.invalidate(ctx, previous, in.Code)
	s.log.Info("departement updated", "id", id, "code", in.Code)
	return s.Get(ctx, id)
}

// UpdateNom overwrites the name of the département with the given code.
func (s *DepartementService) UpdateNom(ctx context.Context, code, nom string) (domain.Departement, error) {
	code = domain.NormalizeCode(code)
	input := struct {
		Nom string `json:"nom" validate:"required,min=2,max=100"`
	}{Nom: nom}
	if err := domain.Validate(input); err != nil {
		return domain.Departement{}, err
	}

	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		d, err := s.departements.FindByCode(ctx, code)
		if err != nil {
			return classify(err, "Département avec le code %s", code)
		}
		d.Nom = domain.StringPtr(nom)
		_, err = s.departements.Save(ctx, d)
		return classify(err, "Département avec le code %s", code)
	})
	if err != nil {
		return domain.Departement{}, err
	}

	s.invalidate(ctx, code)
	return s.GetByCode(ctx, code)
}

// Delete removes département id. It is refused while the département owns
// villes.
func (s *DepartementService) Delete(ctx context.Context, id int64) error {
	var code string
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		d, err := s.departements.FindByID(ctx, id)
		if err != nil {
			return classify(err, "Département %d", id)
		}
		code = d.Code

		n, err := s.departements.CountVilles(ctx, id)
		if err != nil {
			return classify(err, "villes du département %d", id)
		}
		if n > 0 {
			return domain.DeleteForbidden("Le département %s contient encore %d ville(s) et ne peut pas être supprimé", d.Code, n)
		}

		return classify(s.departements.DeleteByID(ctx, id), "Département %d", id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, code)
	s.log.Info("departement deleted", "id", id, "code", code)
	return nil
}

// FillMissingNoms names every unnamed département whose code is known and
// returns how many were updated.
func (s *DepartementService) FillMissingNoms(ctx context.Context) (int, error) {
	var filled []string
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		unnamed, err := s.departements.FindWithoutNom(ctx)
		if err != nil {
			return classify(err, "départements sans nom")
		}
		for _, d := range unnamed {
			nom, ok := NomForCode(d.Code)
			if !ok {
				continue
			}
			d.Nom = domain.StringPtr(nom)
			if _, err := s.departements.Save(ctx, d); err != nil {
				return classify(err, "Département avec le code %s", d.Code)
			}
			filled = append(filled, d.Code)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, filled...)
	s.log.Info("missing departement names filled", "count", len(filled))
	return len(filled), nil
}

// Stats returns the ville count and population of the département with
// the given code. Results are cached under the département's current stats
// version; writes bump the version instead of deleting entries.
func (s *DepartementService) Stats(ctx context.Context, code string) (dto.DepartementStats, error) {
	code = domain.NormalizeCode(code)

	version, cacheable := s.statsVersion(ctx, code)
	key := cache.StatsKey(code, version)
	if cacheable {
		if raw, ok, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn("stats cache read failed", "code", code, "error", err)
		} else if ok {
			var stats dto.DepartementStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return stats, nil
			}
			s.log.Warn("discarding unreadable cached stats", "code", code)
		}
	}

	d, err := s.departements.FindByCode(ctx, code)
	if err != nil {
		return dto.DepartementStats{}, classify(err, "Département avec le code %s", code)
	}

	stats := dto.DepartementStats{Code: d.Code, Nom: d.Nom}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.departements.CountVilles(gctx, d.ID)
		stats.NombreVilles = n
		return err
	})
	g.Go(func() error {
		n, err := s.departements.SumPopulation(gctx, d.ID)
		stats.PopulationTotale = n
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DepartementStats{}, classify(err, "statistiques du département %s", code)
	}

	if !cacheable {
		return stats, nil
	}
	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, raw); err != nil {
			s.log.Warn("stats cache write failed", "code", code, "error", err)
		}
	}
	return stats, nil
}

// statsVersion reads the département's stats version. An absent counter is
// version 0. When the counter cannot be read the result must not be cached.
func (s *DepartementService) statsVersion(ctx context.Context, code string) (int64, bool) {
	raw, ok, err := s.cache.Get(ctx, cache.StatsVersionKey(code))
	if err != nil {
		s.log.Warn("stats version read failed", "code", code, "error", err)
		return 0, false
	}
	if !ok {
		return 0, true
	}
	version, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		s.log.Warn("unreadable stats version", "code", code, "value", string(raw))
		return 0, false
	}
	return version, true
}

func (s *DepartementService) PopulationTotale(ctx context.Context, code string) (int64, error) {
	stats, err := s.Stats(ctx, code)
	if err != nil {
		return 0, err
	}
	return stats.PopulationTotale, nil
}

func (s *DepartementService) NombreVilles(ctx context.Context, code string) (int64, error) {
	stats, err := s.Stats(ctx, code)
	if err != nil {
		return 0, err
	}
	return stats.NombreVilles, nil
}

// project runs find and attaches villes to every result in one query.
func (s *DepartementService) project(ctx context.Context, find func(context.Context) ([]domain.Departement, error)) ([]domain.Departement, error) {
	departements, err := find(ctx)
	if err != nil {
		return nil, classify(err, "départements")
	}
	if err := s.attachVilles(ctx, departements); err != nil {
		return nil, err
	}
	return departements, nil
}

func (s *DepartementService) attachVilles(ctx context.Context, departements []domain.Departement) error {
	ids := make([]int64, len(departements))
	for i, d := range departements {
		ids[i] = d.ID
	}

	byDept, err := s.villes.FindByDepartementIDs(ctx, ids)
	if err != nil {
		return classify(err, "villes des départements")
	}
	for i := range departements {
		villes := byDept[departements[i].ID]
		if villes == nil {
			villes = []domain.Ville{}
		}
		departements[i].Villes = villes
	}
	return nil
}

func (s *DepartementService) invalidate(ctx context.Context, codes ...string) {
	invalidateStats(ctx, s.cache, s.log, codes...)
}

// invalidateStats bumps the stats version of every code so entries cached
// before the write are never read again. Failures are logged only; stale
// entries then live until their TTL.
func invalidateStats(ctx context.Context, c cache.Cache, log *logger.Logger, codes ...string) {
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		if _, err := c.Incr(ctx, cache.StatsVersionKey(code)); err != nil {
			log.Warn("stats cache invalidation failed", "code", code, "error", err)
		}
	}
}
