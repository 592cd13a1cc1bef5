package directory

import (
	"testing"

	"fieldrep/internal/model"

	"github.com/stretchr/testify/assert"
)

func entries() []model.DoctorEntry {
	return []model.DoctorEntry{
		{Name: "Dr. Iyer", Type: model.DoctorTypeDoctor, Speciality: "Cardiologist"},
		{Name: "Sai Medicals", Type: model.DoctorTypeChemist},
		{Name: "Dr. Bose", Type: model.DoctorTypeDoctor, Speciality: "Dermatologist"},
		{Name: "Cardio Pharma Distributors", Type: model.DoctorTypeStockiest},
	}
}

func TestFilter_EmptyQueryReturnsAllUnchanged(t *testing.T) {
	in := entries()
	assert.Equal(t, in, Filter("", in))
}

func TestFilter_WhitespaceIsMatched(t *testing.T) {
	assert.Empty(t, Filter("   ", entries()))

	got := Filter("cardio ", entries())
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Cardio Pharma Distributors", got[0].Name)
	}
}

func TestFilter_CaseInsensitiveAcrossFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"speciality and name", "cardio", []string{"Dr. Iyer", "Cardio Pharma Distributors"}},
		{"upper case query", "DERMA", []string{"Dr. Bose"}},
		{"type field", "chemist", []string{"Sai Medicals"}},
		{"name prefix", "dr.", []string{"Dr. Iyer", "Dr. Bose"}},
		{"no match", "oncology", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.query, entries())
			names := make([]string, 0, len(got))
			for _, e := range got {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
