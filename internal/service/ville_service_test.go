package service

import (
	"context"
	"math"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/repository"
	"github.com/jbweber/homelab/territoire/internal/testutil"
)

func intPtr(n int) *int { return &n }

func noms(villes []domain.Ville) []string {
	out := make([]string, len(villes))
	for i, v := range villes {
		out[i] = v.Nom
	}
	return out
}

func TestVilleService_Create(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	herault := testutil.SeedDepartement(t, f.ds, "34", "Hérault")
	testutil.SeedDepartement(t, f.ds, "30", "Gard")

	v, err := f.villes.Create(ctx, domain.VilleInput{Nom: " Metropolis ", NbHabitants: 1000, DepartementID: herault})
	require.NoError(t, err)
	assert.Equal(t, "Metropolis", v.Nom)
	assert.Equal(t, "34", v.Departement.Code)

	_, err = f.villes.Create(ctx, domain.VilleInput{Nom: "Metropolis", NbHabitants: 2000, CodeDepartement: "30"})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.QuickCreate(ctx, "METROPOLIS", 2000, "30")
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.Create(ctx, domain.VilleInput{Nom: "Nulle-part", NbHabitants: 10, CodeDepartement: "12"})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = f.villes.Create(ctx, domain.VilleInput{Nom: "Orpheline", NbHabitants: 10})
	assert.True(t, domain.IsCode(err, domain.CodeConstraint))

	_, err = f.villes.Create(ctx, domain.VilleInput{Nom: "X", NbHabitants: 10, CodeDepartement: "30"})
	assert.True(t, domain.IsCode(err, domain.CodeConstraint))

	n, err := f.villes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.VillesCreated))
}

func TestVilleService_AccentedNamesFoldCase(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	testutil.SeedDepartement(t, f.ds, "27", "Eure")

	_, err := f.villes.Create(ctx, domain.VilleInput{Nom: "Évreux", NbHabitants: 47000, CodeDepartement: "27"})
	require.NoError(t, err)

	found, err := f.villes.NomContaining(ctx, "ÉVREUX")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	v, err := f.villes.GetByNom(ctx, "évreux")
	require.NoError(t, err)
	assert.Equal(t, "Évreux", v.Nom)

	_, err = f.villes.Create(ctx, domain.VilleInput{Nom: "évreux", NbHabitants: 10, CodeDepartement: "27"})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Étrépagny", NbHabitants: 4000, CodeDepartement: "27"},
		{Nom: "ÉTRÉPAGNY", NbHabitants: 4000, CodeDepartement: "27"},
	})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))
}

func TestVilleService_UpdatePopulation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	d := testutil.SeedDepartement(t, f.ds, "48", "Lozère")
	id := testutil.SeedVille(t, f.ds, d, "Mende", 12000)

	_, err := f.villes.UpdatePopulation(ctx, id, 0)
	assert.True(t, domain.IsCode(err, domain.CodeConstraint))

	v, err := f.villes.UpdatePopulation(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v.NbHabitants)
	assert.Equal(t, "48", v.Departement.Code)

	_, err = f.villes.UpdatePopulation(ctx, 999, 10)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestVilleService_Update(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	herault := testutil.SeedDepartement(t, f.ds, "34", "Hérault")
	testutil.SeedDepartement(t, f.ds, "30", "Gard")
	sete := testutil.SeedVille(t, f.ds, herault, "Sete", 44000)
	testutil.SeedVille(t, f.ds, herault, "Montpellier", 285000)

	v, err := f.villes.Update(ctx, sete, domain.VilleInput{Nom: "sete", NbHabitants: 45000, CodeDepartement: "30"})
	require.NoError(t, err)
	assert.Equal(t, "sete", v.Nom)
	assert.Equal(t, "30", v.Departement.Code)

	_, err = f.villes.Update(ctx, sete, domain.VilleInput{Nom: "Montpellier", NbHabitants: 45000, CodeDepartement: "30"})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.Update(ctx, 999, domain.VilleInput{Nom: "Ailleurs", NbHabitants: 1, CodeDepartement: "30"})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	require.NoError(t, f.villes.Delete(ctx, sete))
	err = f.villes.Delete(ctx, sete)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestVilleService_PopulationQueries(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	d := testutil.SeedDepartement(t, f.ds, "30", "Gard")
	testutil.SeedVille(t, f.ds, d, "Pile", 10000)
	testutil.SeedVille(t, f.ds, d, "Nimes", 150000)
	testutil.SeedVille(t, f.ds, d, "Ales", 40000)

	exact, err := f.villes.PopulationBetween(ctx, 10000, 10000)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pile"}, noms(exact))

	_, err = f.villes.PopulationBetween(ctx, 500, 100)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	_, err = f.villes.ByDepartementAndPopulationRange(ctx, "30", 500, 100)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	top, err := f.villes.TopByDepartement(ctx, "30", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nimes", "Ales"}, noms(top))

	_, err = f.villes.TopByDepartement(ctx, "30", 0)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	all, err := f.villes.ByDepartementAndMinPopulation(ctx, "30", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	above, err := f.villes.ByDepartementAndMinPopulation(ctx, "30", intPtr(40000))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nimes"}, noms(above))

	unknown, err := f.villes.ByDepartement(ctx, "12")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	most, err := f.villes.MostPopulated(ctx, "30")
	require.NoError(t, err)
	assert.Equal(t, "Nimes", most.Nom)

	_, err = f.villes.MostPopulated(ctx, "12")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestVilleService_DepartementStats(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	d := testutil.SeedDepartement(t, f.ds, "30", "Gard")
	testutil.SeedDepartement(t, f.ds, "48", "")
	testutil.SeedVille(t, f.ds, d, "Nimes", 150000)
	testutil.SeedVille(t, f.ds, d, "Ales", 40000)

	stats, err := f.villes.DepartementStats(ctx, "30")
	require.NoError(t, err)
	assert.Equal(t, "30", stats.Departement.Code)
	assert.Equal(t, int64(2), stats.NombreVilles)
	assert.Equal(t, int64(190000), stats.PopulationTotale)
	require.NotNil(t, stats.VilleLaPlusPeuplee)
	assert.Equal(t, "Nimes", stats.VilleLaPlusPeuplee.Nom)

	empty, err := f.villes.DepartementStats(ctx, "48")
	require.NoError(t, err)
	assert.Zero(t, empty.NombreVilles)
	assert.Nil(t, empty.VilleLaPlusPeuplee)

	_, err = f.villes.DepartementStats(ctx, "12")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestVilleService_Import(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	testutil.SeedDepartement(t, f.ds, "34", "Hérault")
	d := testutil.SeedDepartement(t, f.ds, "30", "Gard")
	testutil.SeedVille(t, f.ds, d, "Nimes", 150000)

	_, err := f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"},
		{Nom: "Beziers", NbHabitants: 0, CodeDepartement: "34"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeConstraint))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Details, "[1].nbHabitants")

	_, err = f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"},
		{Nom: "montpellier", NbHabitants: 1, CodeDepartement: "34"},
	})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"},
		{Nom: "Nimes", NbHabitants: 1, CodeDepartement: "34"},
	})
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))

	_, err = f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"},
		{Nom: "Mende", NbHabitants: 12000, CodeDepartement: "48"},
	})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	n, err := f.villes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	saved, err := f.villes.Import(ctx, []domain.VilleInput{
		{Nom: "Montpellier", NbHabitants: 285000, CodeDepartement: "34"},
		{Nom: "Ales", NbHabitants: 40000, DepartementID: d},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "34", saved[0].Departement.Code)
	assert.Equal(t, "30", saved[1].Departement.Code)
	assert.Equal(t, 2.0, promtestutil.ToFloat64(f.metrics.VillesCreated))
}

func TestVilleService_AdvancedSearch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	gard := testutil.SeedDepartement(t, f.ds, "30", "Gard")
	herault := testutil.SeedDepartement(t, f.ds, "34", "Hérault")
	testutil.SeedVille(t, f.ds, gard, "Nimes", 150000)
	testutil.SeedVille(t, f.ds, gard, "Ales", 40000)
	testutil.SeedVille(t, f.ds, herault, "Montpellier", 285000)
	testutil.SeedVille(t, f.ds, herault, "Sete", 44000)

	tests := []struct {
		name     string
		criteria SearchCriteria
		want     []string
	}{
		{"departement and range", SearchCriteria{CodeDepartement: "34", MinPopulation: intPtr(40000), MaxPopulation: intPtr(50000), Nom: "Mont"}, []string{"Sete"}},
		{"departement and min", SearchCriteria{CodeDepartement: "30", MinPopulation: intPtr(40000)}, []string{"Nimes"}},
		{"range", SearchCriteria{MinPopulation: intPtr(40000), MaxPopulation: intPtr(44000)}, []string{"Sete", "Ales"}},
		{"min", SearchCriteria{MinPopulation: intPtr(150000), Nom: "Sete"}, []string{"Montpellier"}},
		{"nom", SearchCriteria{Nom: "e"}, []string{"Nimes", "Ales", "Montpellier", "Sete"}},
		{"departement alone lists everything", SearchCriteria{CodeDepartement: "30"}, []string{"Nimes", "Ales", "Montpellier", "Sete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.villes.AdvancedSearch(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, noms(got))
		})
	}
}

func TestVilleService_ListPaged(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	d := testutil.SeedDepartement(t, f.ds, "30", "Gard")
	testutil.SeedVille(t, f.ds, d, "Nimes", 150000)
	testutil.SeedVille(t, f.ds, d, "Ales", 40000)

	page, err := f.villes.ListPaged(ctx, repository.PageRequest{Size: 1, Sort: "nom"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ales"}, noms(page.Content))
	assert.Equal(t, int64(2), page.TotalElements)

	_, err = f.villes.ListPaged(ctx, repository.PageRequest{Size: 10, Sort: "population"})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	// Page*Size would overflow the SQL offset
	_, err = f.villes.ListPaged(ctx, repository.PageRequest{Page: math.MaxInt, Size: 10, Sort: "nom"})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	_, err = f.villes.ListPaged(ctx, repository.PageRequest{Page: repository.MaxPage + 1, Size: 10})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidData))

	last, err := f.villes.ListPaged(ctx, repository.PageRequest{Page: repository.MaxPage, Size: repository.MaxPageSize})
	require.NoError(t, err)
	assert.Empty(t, last.Content)
}
