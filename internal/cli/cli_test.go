package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// runCmd executes the root command against a fake API, with config and cache
// confined to a temp dir.
func runCmd(t *testing.T, handler http.Handler, args ...string) (string, string, error) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("RENTDESK_CONFIG_DIR", t.TempDir())
	t.Setenv("RENTDESK_API_URL", srv.URL)
	t.Setenv("RENTDESK_TOKEN", "test-token")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func listPayload(items ...any) []byte {
	raws := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		b, _ := json.Marshal(it)
		raws = append(raws, b)
	}
	b, _ := json.Marshal(map[string]any{
		"items": raws,
		"pagination": map[string]any{
			"currentPage": 1, "totalPages": 3, "totalItems": 42, "itemsPerPage": 20,
			"hasNextPage": true, "hasPrevPage": false,
		},
	})
	return b
}

func TestPropertiesListTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("status query = %q", got)
		}
		w.Write(listPayload(map[string]any{
			"id": "prop-1", "title": "Two bed flat", "listingType": "rent",
			"status": "pending", "price": 1200.0, "city": "Lagos",
		}))
	})

	out, _, err := runCmd(t, mux, "properties", "list", "--status", "pending")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "prop-1") || !strings.Contains(out, "Two bed flat") {
		t.Errorf("table missing row:\n%s", out)
	}
	if !strings.Contains(out, "page 1/3 (42 items)") {
		t.Errorf("pagination footer missing:\n%s", out)
	}
}

func TestPropertiesApproveFetchesThenMutates(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties/prop-9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "prop-9", "title": "Loft", "listingType": "sale", "status": "pending",
		})
	})
	mux.HandleFunc("PUT /properties/prop-9/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "listing approved"})
	})

	out, _, err := runCmd(t, mux, "properties", "approve", "prop-9")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotBody["status"] != "active" {
		t.Errorf("status sent = %v", gotBody["status"])
	}
	if !strings.Contains(out, "listing approved") {
		t.Errorf("outcome message missing:\n%s", out)
	}
}

func TestPropertiesRejectRequiresReason(t *testing.T) {
	statusCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties/prop-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "prop-2", "listingType": "rent", "status": "pending",
		})
	})
	mux.HandleFunc("PUT /properties/prop-2/status", func(w http.ResponseWriter, r *http.Request) {
		statusCalled = true
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	_, errOut, err := runCmd(t, mux, "properties", "reject", "prop-2")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if statusCalled {
		t.Error("status endpoint called despite missing reason")
	}
	if !strings.Contains(errOut, "reject") {
		t.Errorf("stderr should name the action: %q", errOut)
	}
}

func TestPropertiesRejectIllegalFromActive(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties/prop-3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "prop-3", "listingType": "rent", "status": "active",
		})
	})

	_, _, err := runCmd(t, mux, "properties", "reject", "prop-3", "--reason", "duplicate listing")
	if err == nil {
		t.Fatal("expected illegal-transition error")
	}
}

func TestSubscriptionsCancelSendsReason(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /subscriptions/sub-5", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "sub-5", "billingCycle": "monthly", "status": "active",
		})
	})
	mux.HandleFunc("POST /subscriptions/sub-5/cancel", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "subscription cancelled"})
	})

	out, _, err := runCmd(t, mux, "subs", "cancel", "sub-5", "--reason", "switching plans")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotBody["cancellationReason"] != "switching plans" {
		t.Errorf("body = %v", gotBody)
	}
	if !strings.Contains(out, "subscription cancelled") {
		t.Errorf("message missing:\n%s", out)
	}
}

func TestUsersSuspendJSONOutput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/user-4", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "user-4", "role": "landlord", "status": "active",
		})
	})
	mux.HandleFunc("PUT /users/user-4/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "account suspended"})
	})

	out, _, err := runCmd(t, mux, "users", "suspend", "user-4", "--reason", "chargeback abuse", "--format", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output not JSON: %v\n%s", err, out)
	}
	if payload["message"] != "account suspended" {
		t.Errorf("payload = %v", payload)
	}
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /properties/prop-7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"message": "property not found"})
	})

	_, errOut, err := runCmd(t, mux, "properties", "show", "prop-7")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "property not found") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RENTDESK_CONFIG_DIR", dir)
	t.Setenv("RENTDESK_API_URL", "")
	t.Setenv("RENTDESK_TOKEN", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "set", "--api-url", "https://admin.example.com", "--token", "sekrit", "--page-size", "50"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out.Reset()
	cmd = NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "show", "--format", "json", "--pretty"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "https://admin.example.com") {
		t.Errorf("api url missing:\n%s", s)
	}
	if strings.Contains(s, "sekrit") {
		t.Errorf("token leaked:\n%s", s)
	}
}
