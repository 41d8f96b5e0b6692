package handlers_test

import (
	"net/http"
	"testing"

	"github.com/solarconecta/solarconecta-api/internal/database"
	"github.com/solarconecta/solarconecta-api/internal/models"
)

func TestLeadEndpoint(t *testing.T) {
	app := setupTestApp(t)

	company := models.Company{Name: "Sol Forte", CNPJ: "44444444000144", City: "SP", State: "SP", IsActive: true}
	if err := database.DB.Create(&company).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := postJSON(t, app, "/api/leads", map[string]interface{}{
		"company_id": company.ID,
		"name":       "Carlos",
		"email":      "c@x.com",
		"message":    "Quero um orçamento",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("lead status = %d, want 201", resp.StatusCode)
	}
	var lead struct {
		Success bool `json:"success"`
	}
	decode(t, resp, &lead)
	if !lead.Success {
		t.Error("lead success = false, want true")
	}

	// unknown target company
	resp = postJSON(t, app, "/api/leads", map[string]interface{}{
		"company_id": "0e0d9707-07a5-4b67-9e0e-3f8ffca28fc3",
		"name":       "Carlos",
		"email":      "c@x.com",
		"message":    "Quero um orçamento",
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown-company lead status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}
