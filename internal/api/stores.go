package api

//go:generate mockgen -source=stores.go -destination=mocks/mock_stores.go -package=mocks

import (
	"context"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/dto"
	"github.com/jbweber/homelab/territoire/internal/repository"
	"github.com/jbweber/homelab/territoire/internal/service"
)

// DepartementsStore is what the département handlers need from the service
// layer. *service.DepartementService implements it.
type DepartementsStore interface {
	ListPaged(ctx context.Context, req repository.PageRequest) (repository.Page[domain.Departement], error)
	Get(ctx context.Context, id int64) (domain.Departement, error)
	GetByCode(ctx context.Context, code string) (domain.Departement, error)
	GetByNom(ctx context.Context, nom string) (domain.Departement, error)
	Search(ctx context.Context, term string) ([]domain.Departement, error)
	WithNom(ctx context.Context) ([]domain.Departement, error)
	WithoutNom(ctx context.Context) ([]domain.Departement, error)
	WithVilles(ctx context.Context) ([]domain.Departement, error)
	WithMinVilles(ctx context.Context, min int64) ([]domain.Departement, error)
	WithMinPopulation(ctx context.Context, min int64) ([]domain.Departement, error)
	Metropolitains(ctx context.Context) ([]domain.Departement, error)
	OutreMer(ctx context.Context) ([]domain.Departement, error)
	Corse(ctx context.Context) ([]domain.Departement, error)
	ByCodePrefix(ctx context.Context, prefix string) ([]domain.Departement, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Villes(ctx context.Context, id int64) ([]domain.Ville, error)
	Create(ctx context.Context, in domain.DepartementInput) (domain.Departement, error)
	QuickCreate(ctx context.Context, code, nom string) (domain.Departement, error)
	Update(ctx context.Context, id int64, in domain.DepartementInput) (domain.Departement, error)
	UpdateNom(ctx context.Context, code, nom string) (domain.Departement, error)
	Delete(ctx context.Context, id int64) error
	FillMissingNoms(ctx context.Context) (int, error)
	Stats(ctx context.Context, code string) (dto.DepartementStats, error)
	PopulationTotale(ctx context.Context, code string) (int64, error)
	NombreVilles(ctx context.Context, code string) (int64, error)
}

// VillesStore is what the ville handlers need from the service layer.
// *service.VilleService implements it.
type VillesStore interface {
	ListPaged(ctx context.Context, req repository.PageRequest) (repository.Page[domain.Ville], error)
	Get(ctx context.Context, id int64) (domain.Ville, error)
	GetByNom(ctx context.Context, nom string) (domain.Ville, error)
	NomContaining(ctx context.Context, fragment string) ([]domain.Ville, error)
	NomStartingWith(ctx context.Context, prefix string) ([]domain.Ville, error)
	PopulationGreaterThan(ctx context.Context, min int) ([]domain.Ville, error)
	PopulationBetween(ctx context.Context, min, max int) ([]domain.Ville, error)
	Count(ctx context.Context) (int64, error)
	ByDepartement(ctx context.Context, code string) ([]domain.Ville, error)
	ByDepartementAndMinPopulation(ctx context.Context, code string, min *int) ([]domain.Ville, error)
	ByDepartementAndPopulationRange(ctx context.Context, code string, min, max int) ([]domain.Ville, error)
	TopByDepartement(ctx context.Context, code string, n int) ([]domain.Ville, error)
	MostPopulated(ctx context.Context, code string) (domain.Ville, error)
	DepartementStats(ctx context.Context, code string) (dto.DepartementVilleStats, error)
	Create(ctx context.Context, in domain.VilleInput) (domain.Ville, error)
	QuickCreate(ctx context.Context, nom string, nbHabitants int, code string) (domain.Ville, error)
	Update(ctx context.Context, id int64, in domain.VilleInput) (domain.Ville, error)
	UpdatePopulation(ctx context.Context, id int64, nbHabitants int) (domain.Ville, error)
	Delete(ctx context.Context, id int64) error
	Import(ctx context.Context, inputs []domain.VilleInput) ([]domain.Ville, error)
	AdvancedSearch(ctx context.Context, c service.SearchCriteria) ([]domain.Ville, error)
}

var (
	_ DepartementsStore = (*service.DepartementService)(nil)
	_ VillesStore       = (*service.VilleService)(nil)
)
