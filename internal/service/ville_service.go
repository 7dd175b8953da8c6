package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jbweber/homelab/territoire/internal/cache"
	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// SearchCriteria are the optional filters of an advanced ville search.
type SearchCriteria struct {
	Nom             string
	MinPopulation   *int
	MaxPopulation   *int
	CodeDepartement string
}

// VilleService holds the rules applied around ville reads and writes.
type VilleService struct {
	ds           *datastore.Datastore
	departements repository.DepartementRepository
	villes       repository.VilleRepository
	cache        cache.Cache
	metrics      *metrics.Metrics
	log          *logger.Logger
}

func NewVilleService(
	ds *datastore.Datastore,
	departements repository.DepartementRepository,
	villes repository.VilleRepository,
	c cache.Cache,
	m *metrics.Metrics,
	log *logger.Logger,
) *VilleService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &VilleService{
		ds:           ds,
		departements: departements,
		villes:       villes,
		cache:        c,
		metrics:      m,
		log:          log,
	}
}

func (s *VilleService) List(ctx context.Context) ([]domain.Ville, error) {
	villes, err := s.villes.FindAll(ctx)
	return villes, classify(err, "villes")
}

// ListPaged returns one page of villes. The sort key defaults to "id".
func (s *VilleService) ListPaged(ctx context.Context, req repository.PageRequest) (repository.Page[domain.Ville], error) {
	if err := validatePageRequest(&req, "id", repository.VilleSortKeys()); err != nil {
		return repository.Page[domain.Ville]{}, err
	}
	page, err := s.villes.FindAllPaged(ctx, req)
	if err != nil {
		return repository.Page[domain.Ville]{}, classify(err, "page de villes")
	}
	return page, nil
}

func (s *VilleService) Get(ctx context.Context, id int64) (domain.Ville, error) {
	v, err := s.villes.FindByID(ctx, id)
	if err != nil {
		return domain.Ville{}, classify(err, "Ville %d", id)
	}
	return v, nil
}

// GetByNom matches the whole name, ignoring case.
func (s *VilleService) GetByNom(ctx context.Context, nom string) (domain.Ville, error) {
	v, err := s.villes.FindByNom(ctx, strings.TrimSpace(nom))
	if err != nil {
		return domain.Ville{}, classify(err, "Ville avec le nom %s", nom)
	}
	return v, nil
}

func (s *VilleService) NomContaining(ctx context.Context, fragment string) ([]domain.Ville, error) {
	villes, err := s.villes.FindByNomContaining(ctx, fragment)
	return villes, classify(err, "villes")
}

func (s *VilleService) NomStartingWith(ctx context.Context, prefix string) ([]domain.Ville, error) {
	villes, err := s.villes.FindByNomStartingWith(ctx, prefix)
	return villes, classify(err, "villes")
}

// PopulationGreaterThan keeps villes strictly above min.
func (s *VilleService) PopulationGreaterThan(ctx context.Context, min int) ([]domain.Ville, error) {
	villes, err := s.villes.FindByPopulationGreaterThan(ctx, min)
	return villes, classify(err, "villes")
}

// PopulationBetween includes both bounds.
func (s *VilleService) PopulationBetween(ctx context.Context, min, max int) ([]domain.Ville, error) {
	if err := validateRange(min, max); err != nil {
		return nil, err
	}
	villes, err := s.villes.FindByPopulationBetween(ctx, min, max)
	return villes, classify(err, "villes")
}

func (s *VilleService) Count(ctx context.Context) (int64, error) {
	n, err := s.villes.Count(ctx)
	return n, classify(err, "villes")
}

// ByDepartement lists the villes of a département, most populated first.
// An unknown code gives an empty list.
func (s *VilleService) ByDepartement(ctx context.Context, code string) ([]domain.Ville, error) {
	villes, err := s.villes.FindByDepartementCode(ctx, code)
	return villes, classify(err, "villes du département %s", code)
}

// ByDepartementAndMinPopulation keeps villes strictly above min. A nil min
// keeps every ville of the département.
func (s *VilleService) ByDepartementAndMinPopulation(ctx context.Context, code string, min *int) ([]domain.Ville, error) {
	if min == nil {
		return s.ByDepartement(ctx, code)
	}
	villes, err := s.villes.FindByDepartementAndMinPopulation(ctx, code, *min)
	return villes, classify(err, "villes du département %s", code)
}

func (s *VilleService) ByDepartementAndPopulationRange(ctx context.Context, code string, min, max int) ([]domain.Ville, error) {
	if err := validateRange(min, max); err != nil {
		return nil, err
	}
	villes, err := s.villes.FindByDepartementAndPopulationRange(ctx, code, min, max)
	return villes, classify(err, "villes du département %s", code)
}

// TopByDepartement returns at most n villes, most populated first.
func (s *VilleService) TopByDepartement(ctx context.Context, code string, n int) ([]domain.Ville, error) {
	if n < 1 {
		return nil, domain.InvalidData("le nombre de villes demandé doit être au moins 1: %d", n)
	}
	villes, err := s.villes.FindTopNByDepartement(ctx, code, n)
	return villes, classify(err, "villes du département %s", code)
}

func (s *VilleService) MostPopulated(ctx context.Context, code string) (domain.Ville, error) {
	code = domain.NormalizeCode(code)
	v, err := s.villes.FindMostPopulated(ctx, code)
	if err != nil {
		return domain.Ville{}, classify(err, "Ville la plus peuplée du département %s", code)
	}
	return v, nil
}

// DepartementStats returns the count, population and most populated ville
// of a département. An unknown code fails as a whole.
func (s *VilleService) DepartementStats(ctx context.Context, code string) (dto.DepartementVilleStats, error) {
	code = domain.NormalizeCode(code)
	d, err := s.departements.FindByCode(ctx, code)
	if err != nil {
		return dto.DepartementVilleStats{}, classify(err, "Département avec le code %s", code)
	}

	stats := dto.DepartementVilleStats{
		Departement: dto.DepartementRefDTO{ID: d.ID, Code: d.Code, Nom: d.Nom},
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.villes.CountByDepartement(gctx, code)
		stats.NombreVilles = n
		return err
	})
	g.Go(func() error {
		n, err := s.villes.SumPopulationByDepartement(gctx, code)
		stats.PopulationTotale = n
		return err
	})
	g.Go(func() error {
		v, err := s.villes.FindMostPopulated(gctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.VilleLaPlusPeuplee = dto.FromVille(&v)
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.DepartementVilleStats{}, classify(err, "statistiques du département %s", code)
	}
	return stats, nil
}

// Create inserts a ville into an existing département. Names are unique
// across all départements, ignoring case.
func (s *VilleService) Create(ctx context.Context, in domain.VilleInput) (domain.Ville, error) {
	in.Normalize()
	if err := validateVilleInput(in); err != nil {
		return domain.Ville{}, err
	}

	var created domain.Ville
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		d, err := s.resolveDepartement(ctx, in)
		if err != nil {
			return err
		}
		if err := s.checkNomFree(ctx, in.Nom, 0); err != nil {
			return err
		}

		created, err = s.villes.Save(ctx, domain.Ville{Nom: in.Nom, NbHabitants: in.NbHabitants, Departement: d.Ref()})
		return classify(err, "Ville %s", in.Nom)
	})
	if err != nil {
		return domain.Ville{}, err
	}

	s.metrics.AddVillesCreated(1)
	s.invalidate(ctx, created.Departement.Code)
	s.log.Info("ville created", "id", created.ID, "nom", created.Nom, "departement", created.Departement.Code)
	return created, nil
}

// QuickCreate creates a ville from its name, population and département code.
func (s *VilleService) QuickCreate(ctx context.Context, nom string, nbHabitants int, code string) (domain.Ville, error) {
	return s.Create(ctx, domain.VilleInput{Nom: nom, NbHabitants: nbHabitants, CodeDepartement: code})
}

// Update replaces every field of ville id. The ville may move to another
// département.
func (s *VilleService) Update(ctx context.Context, id int64, in domain.VilleInput) (domain.Ville, error) {
	in.Normalize()
	if err := validateVilleInput(in); err != nil {
		return domain.Ville{}, err
	}

	var previous string
	var updated domain.Ville
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		current, err := s.villes.FindByID(ctx, id)
		if err != nil {
			return classify(err, "Ville %d", id)
		}
		previous = current.Departement.Code

		d, err := s.resolveDepartement(ctx, in)
		if err != nil {
			return err
		}
		if err := s.checkNomFree(ctx, in.Nom, id); err != nil {
			return err
		}

		updated, err = s.villes.Save(ctx, domain.Ville{ID: id, Nom: in.Nom, NbHabitants: in.NbHabitants, Departement: d.Ref()})
		return classify(err, "Ville %d", id)
	})
	if err != nil {
		return domain.Ville{}, err
	}

	s.invalidate(ctx, previous, updated.Departement.Code)
	return updated, nil
}

// UpdatePopulation changes only the population of ville id.
func (s *VilleService) UpdatePopulation(ctx context.Context, id int64, nbHabitants int) (domain.Ville, error) {
	if nbHabitants < 1 || nbHabitants > domain.MaxHabitants {
		e := domain.ConstraintViolation("La population doit être comprise entre 1 et %d", domain.MaxHabitants)
		e.Details = map[string]string{"nbHabitants": fmt.Sprintf("valeur refusée: %d", nbHabitants)}
		return domain.Ville{}, e
	}

	var updated domain.Ville
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		v, err := s.villes.FindByID(ctx, id)
		if err != nil {
			return classify(err, "Ville %d", id)
		}
		v.NbHabitants = nbHabitants
		updated, err = s.villes.Save(ctx, v)
		return classify(err, "Ville %d", id)
	})
	if err != nil {
		return domain.Ville{}, err
	}

	s.invalidate(ctx, updated.Departement.Code)
	return updated, nil
}

func (s *VilleService) Delete(ctx context.Context, id int64) error {
	var code string
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		v, err := s.villes.FindByID(ctx, id)
		if err != nil {
			return classify(err, "Ville %d", id)
		}
		code = v.Departement.Code
		return classify(s.villes.DeleteByID(ctx, id), "Ville %d", id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, code)
	s.log.Info("ville deleted", "id", id, "departement", code)
	return nil
}

// Import creates every ville of the batch or none of them. All items are
// checked before the first insert: field constraints, owning département
// and name uniqueness within the batch and against the store.
func (s *VilleService) Import(ctx context.Context, inputs []domain.VilleInput) ([]domain.Ville, error) {
	if len(inputs) == 0 {
		return []domain.Ville{}, nil
	}

	for i := range inputs {
		inputs[i].Normalize()
		if err := validateVilleInput(inputs[i]); err != nil {
			return nil, importError(i, err)
		}
	}

	var saved []domain.Ville
	err := s.ds.InTx(ctx, func(ctx context.Context) error {
		pending := make([]domain.Ville, 0, len(inputs))
		names := make(map[string]int, len(inputs))
		for i, in := range inputs {
			key := datastore.CaseFold(in.Nom)
			if first, dup := names[key]; dup {
				return importError(i, domain.AlreadyExists("La ville %s apparaît deux fois dans le lot (éléments %d et %d)", in.Nom, first, i))
			}
			names[key] = i

			d, err := s.resolveDepartement(ctx, in)
			if err != nil {
				return importError(i, err)
			}
			if err := s.checkNomFree(ctx, in.Nom, 0); err != nil {
				return importError(i, err)
			}
			pending = append(pending, domain.Ville{Nom: in.Nom, NbHabitants: in.NbHabitants, Departement: d.Ref()})
		}

		var err error
		saved, err = s.villes.SaveAll(ctx, pending)
		return classify(err, "import de villes")
	})
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(saved))
	for i, v := range saved {
		codes[i] = v.Departement.Code
	}
	s.metrics.AddVillesCreated(len(saved))
	s.invalidate(ctx, codes...)
	s.log.Info("villes imported", "count", len(saved))
	return saved, nil
}

// AdvancedSearch applies the most specific query the criteria allow:
// département with a population range, département with a minimum,
// population range, minimum, name fragment, then everything.
func (s *VilleService) AdvancedSearch(ctx context.Context, c SearchCriteria) ([]domain.Ville, error) {
	code := domain.NormalizeCode(c.CodeDepartement)
	nom := strings.TrimSpace(c.Nom)

	switch {
	case code != "" && c.MinPopulation != nil && c.MaxPopulation != nil:
		return s.ByDepartementAndPopulationRange(ctx, code, *c.MinPopulation, *c.MaxPopulation)
	case code != "" && c.MinPopulation != nil:
		return s.ByDepartementAndMinPopulation(ctx, code, c.MinPopulation)
	case c.MinPopulation != nil && c.MaxPopulation != nil:
		return s.PopulationBetween(ctx, *c.MinPopulation, *c.MaxPopulation)
	case c.MinPopulation != nil:
		return s.PopulationGreaterThan(ctx, *c.MinPopulation)
	case nom != "":
		return s.NomContaining(ctx, nom)
	default:
		return s.List(ctx)
	}
}

// resolveDepartement finds the owner named by in, by id first and by code
// otherwise.
func (s *VilleService) resolveDepartement(ctx context.Context, in domain.VilleInput) (domain.Departement, error) {
	if in.DepartementID != 0 {
		d, err := s.departements.FindByID(ctx, in.DepartementID)
		if err != nil {
			return domain.Departement{}, classify(err, "Département %d", in.DepartementID)
		}
		return d, nil
	}

	d, err := s.departements.FindByCode(ctx, in.CodeDepartement)
	if err != nil {
		return domain.Departement{}, classify(err, "Département avec le code %s", in.CodeDepartement)
	}
	return d, nil
}

// checkNomFree fails when another ville than self already uses nom.
func (s *VilleService) checkNomFree(ctx context.Context, nom string, self int64) error {
	existing, err := s.villes.FindByNom(ctx, nom)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return classify(err, "Ville %s", nom)
	}
	if existing.ID == self {
		return nil
	}
	return domain.AlreadyExists("Une ville nommée %s existe déjà dans le département %s", existing.Nom, existing.Departement.Code)
}

func (s *VilleService) invalidate(ctx context.Context, codes ...string) {
	invalidateStats(ctx, s.cache, s.log, codes...)
}

func validateVilleInput(in domain.VilleInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	if in.DepartementID == 0 && in.CodeDepartement == "" {
		e := domain.ConstraintViolation("Les données fournies ne respectent pas les contraintes")
		e.Details = map[string]string{"departement": "champ obligatoire"}
		return e
	}
	return nil
}

// importError prefixes the message and field details of err with the
// position of the failing item.
func importError(index int, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		return err
	}

	out := &domain.Error{
		Code:    de.Code,
		Message: fmt.Sprintf("élément %d: %s", index, de.Message),
		Err:     de.Err,
	}
	if len(de.Details) > 0 {
		out.Details = make(map[string]string, len(de.Details))
		for field, msg := range de.Details {
			out.Details[fmt.Sprintf("[%d].%s", index, field)] = msg
		}
	}
	return out
}
