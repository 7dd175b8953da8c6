package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCode_AcceptsEveryValidCode(t *testing.T) {
	var valid []string
	for n := 1; n <= 95; n++ {
		if n == 20 {
			continue
		}
		valid = append(valid, fmt.Sprintf("%02d", n))
	}
	for n := 971; n <= 978; n++ {
		valid = append(valid, fmt.Sprintf("%d", n))
	}
	valid = append(valid, "2A", "2B", "2a", " 75 ")

	for _, code := range valid {
		assert.True(t, IsValidCode(code), "expected %q to be valid", code)
	}
}

func TestIsValidCode_RejectsOutsideCodes(t *testing.T) {
	for _, code := range []string{"", "0", "00", "20", "96", "99", "2C", "970", "979", "1", "100", "+1", "7A", "0975"} {
		assert.False(t, IsValidCode(code), "expected %q to be invalid", code)
	}
}

func TestValidate_DepartementInput(t *testing.T) {
	ok := DepartementInput{Code: "34", Nom: StringPtr("Hérault")}
	require.NoError(t, Validate(ok))

	noName := DepartementInput{Code: "2B"}
	require.NoError(t, Validate(noName))

	err := Validate(DepartementInput{Code: "20", Nom: StringPtr("X")})
	require.Error(t, err)
	assert.Equal(t, CodeConstraint, CodeOf(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Contains(t, e.Details, "code")
	assert.Contains(t, e.Details, "nom")
}

func TestValidate_VilleInput(t *testing.T) {
	require.NoError(t, Validate(VilleInput{Nom: "Montpellier", NbHabitants: 285_121, CodeDepartement: "34"}))

	tests := []struct {
		name  string
		input VilleInput
		field string
	}{
		{"empty name", VilleInput{Nom: "", NbHabitants: 10}, "nom"},
		{"short name", VilleInput{Nom: "A", NbHabitants: 10}, "nom"},
		{"long name", VilleInput{Nom: strings.Repeat("a", 101), NbHabitants: 10}, "nom"},
		{"zero population", VilleInput{Nom: "Sète", NbHabitants: 0}, "nbHabitants"},
		{"negative population", VilleInput{Nom: "Sète", NbHabitants: -4}, "nbHabitants"},
		{"huge population", VilleInput{Nom: "Sète", NbHabitants: MaxHabitants + 1}, "nbHabitants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			require.Error(t, err)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, CodeConstraint, e.Code)
			assert.Contains(t, e.Details, tt.field)
		})
	}
}

func TestValidate_NameLengthCountsRunes(t *testing.T) {
	// 100 accented characters are 200 bytes but still a valid name.
	require.NoError(t, Validate(VilleInput{Nom: strings.Repeat("é", 100), NbHabitants: 1}))
}

func TestDepartement_DerivedValues(t *testing.T) {
	d := Departement{Code: "34", Villes: []Ville{{NbHabitants: 100}, {NbHabitants: 250}}}
	assert.Equal(t, 2, d.NombreVilles())
	assert.Equal(t, int64(350), d.PopulationTotale())
	assert.Equal(t, "34", d.NomOrCode())

	d.Nom = StringPtr("Hérault")
	assert.Equal(t, "Hérault", d.NomOrCode())
	assert.True(t, d.SameAs(Departement{ID: 99, Code: "34"}))
	assert.False(t, d.SameAs(Departement{Code: "30"}))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("x")))
	assert.Equal(t, CodeAlreadyExists, CodeOf(fmt.Errorf("wrapped: %w", AlreadyExists("y"))))
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("plain")))
	assert.True(t, IsCode(DeleteForbidden("z"), CodeDeleteForbidden))
	assert.False(t, IsCode(nil, CodeNotFound))
}
