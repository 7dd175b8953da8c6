package domain

import "strings"

// Departement is a French département.
// Villes is a read view filled by queries; it is never persisted from here.
type Departement struct {
	ID     int64   // Unique identifier
	Code   string  // Uppercase code, unique ("75", "2A", "974")
	Nom    *string // Official name, nil when not registered yet
	Villes []Ville // Owned villes, population descending when loaded
}

// DepartementRef is the owning side of a ville as seen from the ville row.
type DepartementRef struct {
	ID   int64   // Foreign key to Departement
	Code string  // Joined département code
	Nom  *string // Joined département name
}

// Ville is a city or town owned by exactly one département.
type Ville struct {
	ID          int64          // Unique identifier
	Nom         string         // Name, globally unique ignoring case
	NbHabitants int            // Population, 1..MaxHabitants
	Departement DepartementRef // Owning département
}

// ExternalDepartement is one entry of the reference list used by the sync.
type ExternalDepartement struct {
	Code string `json:"code"`
	Nom  string `json:"nom"`
}

const (
	MinNomLength = 2
	MaxNomLength = 100
	MaxHabitants = 50_000_000
)

// SameAs reports whether both values denote the same département, which is
// decided by code only.
func (d Departement) SameAs(other Departement) bool {
	return NormalizeCode(d.Code) == NormalizeCode(other.Code)
}

// NomOrCode returns the name when known and the code otherwise.
func (d Departement) NomOrCode() string {
	if d.Nom != nil && strings.TrimSpace(*d.Nom) != "" {
		return *d.Nom
	}
	return d.Code
}

// Ref returns the reference stored on villes owned by d.
func (d Departement) Ref() DepartementRef {
	return DepartementRef{ID: d.ID, Code: d.Code, Nom: d.Nom}
}

// NombreVilles is the number of loaded villes.
func (d Departement) NombreVilles() int {
	return len(d.Villes)
}

// PopulationTotale sums the population of the loaded villes.
func (d Departement) PopulationTotale() int64 {
	var total int64
	for _, v := range d.Villes {
		total += int64(v.NbHabitants)
	}
	return total
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
