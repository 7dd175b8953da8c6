// Package dto holds the acyclic wire shapes of départements and villes and
// the pure functions that build them from domain entities.
package dto

import (
	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// VilleSummaryDTO is a ville as listed under its département.
type VilleSummaryDTO struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	NbHabitants int    `json:"nbHabitants"`
}

// DepartementDTO is a département with its villes. NombreVilles and
// PopulationTotale are always computed from Villes.
type DepartementDTO struct {
	ID               int64             `json:"id"`
	Code             string            `json:"code"`
	Nom              *string           `json:"nom"`
	Villes           []VilleSummaryDTO `json:"villes"`
	NombreVilles     int               `json:"nombreVilles"`
	PopulationTotale int64             `json:"populationTotale"`
}

// DepartementRefDTO is the département as seen from a ville.
type DepartementRefDTO struct {
	ID   int64   `json:"id"`
	Code string  `json:"code"`
	Nom  *string `json:"nom"`
}

// VilleDTO is a ville with a reference to its département.
type VilleDTO struct {
	ID          int64              `json:"id"`
	Nom         string             `json:"nom"`
	NbHabitants int                `json:"nbHabitants"`
	Departement *DepartementRefDTO `json:"departement"`
}

// PageDTO is one page of a listing.
type PageDTO[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// DepartementStats summarises a département from aggregate queries.
type DepartementStats struct {
	Code             string  `json:"code"`
	Nom              *string `json:"nom"`
	NombreVilles     int64   `json:"nombreVilles"`
	PopulationTotale int64   `json:"populationTotale"`
}

// DepartementVilleStats adds the most populated ville to the summary.
type DepartementVilleStats struct {
	Departement        DepartementRefDTO `json:"departement"`
	NombreVilles       int64             `json:"nombreVilles"`
	PopulationTotale   int64             `json:"populationTotale"`
	VilleLaPlusPeuplee *VilleDTO         `json:"villeLaPlusPeuplee"`
}

// FromDepartement projects d. A nil département maps to nil.
func FromDepartement(d *domain.Departement) *DepartementDTO {
	if d == nil {
		return nil
	}

	out := &DepartementDTO{
		ID:     d.ID,
		Code:   d.Code,
		Nom:    d.Nom,
		Villes: make([]VilleSummaryDTO, 0, len(d.Villes)),
	}
	for _, v := range d.Villes {
		out.Villes = append(out.Villes, VilleSummaryDTO{ID: v.ID, Nom: v.Nom, NbHabitants: v.NbHabitants})
		out.PopulationTotale += int64(v.NbHabitants)
	}
	out.NombreVilles = len(out.Villes)
	return out
}

func FromDepartements(departements []domain.Departement) []DepartementDTO {
	out := make([]DepartementDTO, len(departements))
	for i := range departements {
		out[i] = *FromDepartement(&departements[i])
	}
	return out
}

// FromVille projects v. A nil ville maps to nil.
func FromVille(v *domain.Ville) *VilleDTO {
	if v == nil {
		return nil
	}
	return &VilleDTO{
		ID:          v.ID,
		Nom:         v.Nom,
		NbHabitants: v.NbHabitants,
		Departement: FromDepartementRef(v.Departement),
	}
}

func FromVilles(villes []domain.Ville) []VilleDTO {
	out := make([]VilleDTO, len(villes))
	for i := range villes {
		out[i] = *FromVille(&villes[i])
	}
	return out
}

// FromDepartementRef returns nil for a zero reference.
func FromDepartementRef(ref domain.DepartementRef) *DepartementRefDTO {
	if ref.ID == 0 && ref.Code == "" {
		return nil
	}
	return &DepartementRefDTO{ID: ref.ID, Code: ref.Code, Nom: ref.Nom}
}

// FromPage converts a repository page with fn.
func FromPage[T, U any](p repository.Page[T], fn func([]T) []U) PageDTO[U] {
	return PageDTO[U]{
		Content:       fn(p.Content),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.Page == 0,
		Last:          p.Page >= p.TotalPages-1,
	}
}
