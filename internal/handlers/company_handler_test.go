package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solarconecta/solarconecta-api/internal/database"
	"github.com/solarconecta/solarconecta-api/internal/models"
)

func TestDirectoryEndpoints(t *testing.T) {
	app := setupTestApp(t)

	for _, c := range []models.Company{
		{Name: "SolarTech", Description: "Instalação residencial", CNPJ: "11111111000111", City: "SP", State: "SP", IsActive: true, AverageRating: 4.2},
		{Name: "EcoPower", Description: "Energia solar comercial", CNPJ: "22222222000122", City: "RJ", State: "RJ", IsActive: true, AverageRating: 4.8},
	} {
		if err := database.DB.Create(&c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/companies?search=power&city=RJ&min_rating=4", nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	var list struct {
		Companies []struct {
			Name string `json:"name"`
		} `json:"companies"`
		Total int `json:"total"`
	}
	decode(t, resp, &list)
	if list.Total != 1 || list.Companies[0].Name != "EcoPower" {
		t.Errorf("filtered list = %+v, want only EcoPower", list)
	}

	// company registration needs a session
	resp = postJSON(t, app, "/api/companies", map[string]string{
		"name": "Nova", "cnpj": "33333333000133", "city": "BH", "state": "MG",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous company register status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}
