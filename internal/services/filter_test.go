package services

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
)

func filterFixture() []dto.CompanyView {
	return []dto.CompanyView{
		{ID: uuid.New(), Name: "SolarTech", Description: "Instalação residencial", City: "SP", State: "SP", AverageRating: 4.2},
		{ID: uuid.New(), Name: "EcoPower", Description: "Energia solar comercial", City: "RJ", State: "RJ", AverageRating: 4.8},
	}
}

func names(companies []dto.CompanyView) []string {
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.Name)
	}
	return out
}

func TestFilterCompanies(t *testing.T) {
	tests := []struct {
		name    string
		filters DirectoryFilters
		want    []string
	}{
		{"no filters", DirectoryFilters{}, []string{"SolarTech", "EcoPower"}},
		{"search matches name", DirectoryFilters{Search: "solar"}, []string{"SolarTech", "EcoPower"}},
		{"search matches name only", DirectoryFilters{Search: "solartech"}, []string{"SolarTech"}},
		{"search matches description", DirectoryFilters{Search: "comercial"}, []string{"EcoPower"}},
		{"search is case insensitive", DirectoryFilters{Search: "SOLARTECH"}, []string{"SolarTech"}},
		{"search misses", DirectoryFilters{Search: "eólica"}, []string{}},
		{"city exact match", DirectoryFilters{City: "RJ"}, []string{"EcoPower"}},
		{"city is case insensitive", DirectoryFilters{City: "rj"}, []string{"EcoPower"}},
		{"min rating keeps at or above", DirectoryFilters{MinRating: "4.5"}, []string{"EcoPower"}},
		{"min rating boundary is inclusive", DirectoryFilters{MinRating: "4.2"}, []string{"SolarTech", "EcoPower"}},
		{"unparsable min rating is ignored", DirectoryFilters{MinRating: "abc"}, []string{"SolarTech", "EcoPower"}},
		{"zero min rating is ignored", DirectoryFilters{MinRating: "0"}, []string{"SolarTech", "EcoPower"}},
		{"negative min rating is ignored", DirectoryFilters{MinRating: "-1"}, []string{"SolarTech", "EcoPower"}},
		{"filters compose with AND", DirectoryFilters{Search: "power", City: "RJ", MinRating: "4"}, []string{"EcoPower"}},
		{"AND composition can empty out", DirectoryFilters{Search: "solartech", City: "RJ"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterCompanies(filterFixture(), tt.filters))
			want := tt.want
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("FilterCompanies() = %v, want %v", got, want)
			}
		})
	}
}

func TestFilterCompaniesIsPure(t *testing.T) {
	input := filterFixture()
	filters := DirectoryFilters{Search: "power", MinRating: "4"}

	first := FilterCompanies(input, filters)
	second := FilterCompanies(input, filters)

	if !reflect.DeepEqual(first, second) {
		t.Error("same inputs produced different outputs")
	}
	if !reflect.DeepEqual(input, filterFixture()) {
		t.Error("input slice was mutated")
	}
}
