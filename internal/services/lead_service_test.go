package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
)

func TestSendLeadValidation(t *testing.T) {
	db := testDB(t)
	svc := NewLeadService(db)
	company := seedCompany(t, db, models.Company{Name: "Sol Nascente"})

	tests := []struct {
		name string
		req  dto.SendLeadRequest
	}{
		{"missing name", dto.SendLeadRequest{CompanyID: company.ID, Email: "c@x.com", Message: "oi"}},
		{"missing email", dto.SendLeadRequest{CompanyID: company.ID, Name: "Carlos", Message: "oi"}},
		{"missing message", dto.SendLeadRequest{CompanyID: company.ID, Name: "Carlos", Email: "c@x.com"}},
		{"missing company", dto.SendLeadRequest{Name: "Carlos", Email: "c@x.com", Message: "oi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SendLead(&tt.req); !errors.Is(err, ErrRequiredFields) {
				t.Errorf("SendLead() error = %v, want ErrRequiredFields", err)
			}
		})
	}

	var count int64
	db.Model(&models.Lead{}).Count(&count)
	if count != 0 {
		t.Errorf("lead rows = %d, want 0", count)
	}
}

func TestSendLeadUnknownCompany(t *testing.T) {
	db := testDB(t)
	svc := NewLeadService(db)

	_, err := svc.SendLead(&dto.SendLeadRequest{
		CompanyID: uuid.New(),
		Name:      "Carlos",
		Email:     "c@x.com",
		Message:   "Quero um orçamento",
	})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("SendLead() error = %v, want ErrCompanyNotFound", err)
	}

	var count int64
	db.Model(&models.Lead{}).Count(&count)
	if count != 0 {
		t.Errorf("lead rows = %d, want 0", count)
	}
}

func TestSendLeadSuccess(t *testing.T) {
	db := testDB(t)
	svc := NewLeadService(db)
	company := seedCompany(t, db, models.Company{Name: "Sol Nascente"})

	resp, err := svc.SendLead(&dto.SendLeadRequest{
		CompanyID: company.ID,
		Name:      "Carlos",
		Email:     "c@x.com",
		Phone:     "11999990000",
		Message:   "Quero um orçamento para 10 kWp",
	})
	if err != nil {
		t.Fatalf("SendLead() error = %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}

	var lead models.Lead
	if err := db.First(&lead, "id = ?", resp.LeadID).Error; err != nil {
		t.Fatalf("lead not persisted: %v", err)
	}
	if lead.Status != models.LeadStatusNew {
		t.Errorf("status = %q, want new", lead.Status)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	db := testDB(t)
	svc := NewLeadService(db)
	company := seedCompany(t, db, models.Company{Name: "Sol Nascente"})
	other := seedCompany(t, db, models.Company{Name: "Outra", CNPJ: "99888777000166"})

	resp, err := svc.SendLead(&dto.SendLeadRequest{
		CompanyID: company.ID, Name: "Carlos", Email: "c@x.com", Message: "oi",
	})
	if err != nil {
		t.Fatalf("SendLead() error = %v", err)
	}

	if err := svc.UpdateLeadStatus(company.ID, resp.LeadID, "elsewhere"); !errors.Is(err, ErrInvalidLeadStatus) {
		t.Errorf("UpdateLeadStatus() error = %v, want ErrInvalidLeadStatus", err)
	}

	// another company cannot touch the lead
	if err := svc.UpdateLeadStatus(other.ID, resp.LeadID, models.LeadStatusContacted); !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("UpdateLeadStatus() error = %v, want ErrLeadNotFound", err)
	}

	if err := svc.UpdateLeadStatus(company.ID, resp.LeadID, models.LeadStatusContacted); err != nil {
		t.Fatalf("UpdateLeadStatus() error = %v", err)
	}

	leads, err := svc.ListLeads(company.ID)
	if err != nil {
		t.Fatalf("ListLeads() error = %v", err)
	}
	if leads.Total != 1 || leads.Leads[0].Status != models.LeadStatusContacted {
		t.Errorf("unexpected leads: %+v", leads)
	}
}

// A failed company lookup is an internal error, not "company not found".
func TestSendLeadLookupFailureIsNotNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewLeadService(db)

	if err := db.Migrator().DropTable(&models.Company{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.SendLead(&dto.SendLeadRequest{
		CompanyID: uuid.New(),
		Name:      "Carlos",
		Email:     "c@x.com",
		Message:   "Quero um orçamento",
	})
	if err == nil {
		t.Fatal("SendLead() error = nil, want lookup failure")
	}
	if errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("SendLead() error = %v, want internal error, not ErrCompanyNotFound", err)
	}
}
