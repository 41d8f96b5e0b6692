package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/solarconecta/solarconecta-api/internal/database"
	"github.com/solarconecta/solarconecta-api/internal/models"
)

func TestAuthEndpoints(t *testing.T) {
	app := setupTestApp(t)

	// register
	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "a@x.com",
		"password":         "p1",
		"confirm_password": "p1",
		"full_name":        "User A",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			UserType string `json:"user_type"`
		} `json:"user"`
	}
	decode(t, resp, &auth)
	if auth.AccessToken == "" {
		t.Fatal("register returned no access token")
	}
	if auth.User.UserType != "consumer" {
		t.Errorf("user_type = %q, want consumer", auth.User.UserType)
	}

	// duplicate email conflicts
	resp = postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "a@x.com",
		"password":         "p1",
		"confirm_password": "p1",
		"full_name":        "User A",
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// wrong password
	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong-password login status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	// unknown email
	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "ghost@x.com", "password": "p1",
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown-email login status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// identity surface
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	meResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d, want 200", meResp.StatusCode)
	}
	var me struct {
		Email           string `json:"email"`
		IsAuthenticated bool   `json:"is_authenticated"`
	}
	decode(t, meResp, &me)
	if me.Email != "a@x.com" || !me.IsAuthenticated {
		t.Errorf("unexpected identity: %+v", me)
	}

	// me without a token is rejected
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	anonResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("anonymous me request failed: %v", err)
	}
	if anonResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous me status = %d, want 401", anonResp.StatusCode)
	}
	anonResp.Body.Close()
}

// Validation failures stay 400; storage failures must come back as an
// opaque 500, never the driver's error text.
func TestRegisterStorageFailureIsOpaque(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "a@x.com",
		"password":         "p1",
		"confirm_password": "p2",
		"full_name":        "User A",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("mismatched-confirmation status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	if err := database.DB.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	resp = postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "b@x.com",
		"password":         "p1",
		"confirm_password": "p1",
		"full_name":        "User B",
	}, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("storage-failure status = %d, want 500", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	if body.Message != "Internal server error" {
		t.Errorf("message = %q, want opaque internal error", body.Message)
	}
	if strings.Contains(strings.ToLower(body.Message), "table") {
		t.Errorf("driver error leaked to client: %q", body.Message)
	}
}
