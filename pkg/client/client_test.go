package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Authenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/authenticate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["username"] != "alice@example.com" || req["password"] != "pw1" {
			t.Errorf("unexpected payload: %v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok123",
			"message": "authentication successful",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).Authenticate(context.Background(), "alice@example.com", "pw1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !res.Success || res.Token != "tok123" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestClient_DeniedLoginIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid username or password",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).Authenticate(context.Background(), "alice@example.com", "wrong")
	if err != nil {
		t.Fatalf("a denied login must not be a transport error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected denied result")
	}
}

func TestClient_ValidateToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/validate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"valid":   true,
			"user_id": 7,
			"role":    "event-owner",
			"message": "token is valid",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).ValidateToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !res.Valid || res.UserID != 7 || res.Role != "event-owner" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestClient_ServerErrorSurfacesForRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"service temporarily unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).InvalidateToken(context.Background(), "tok"); err == nil {
		t.Fatalf("5xx responses must surface as errors")
	}
}

func TestClient_CreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user_id": 1,
			"message": "user created with id 1",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).CreateUser(context.Background(), "alice@example.com", "pw1", "client")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !res.Success || res.UserID != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
