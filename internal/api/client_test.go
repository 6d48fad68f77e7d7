package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Griffon01/borelli-advocacia/internal/model"
)

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@borelli.adv.br" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    model.User{ID: 2, Name: "Ana", Email: "ana@borelli.adv.br", Role: model.RoleManager},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	user, err := c.Login(context.Background(), "ana@borelli.adv.br")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 2 || user.Role != model.RoleManager {
		t.Errorf("user = %+v", user)
	}
}

func TestLoginNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Usuário não encontrado"})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	_, err := c.Login(context.Background(), "nobody@borelli.adv.br")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Usuário não encontrado" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestConnectivityErrorIsDistinct(t *testing.T) {
	// Nothing listens here.
	c := NewClient("http://127.0.0.1:1", 0, nil)

	_, err := c.Events(context.Background(), nil)

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("connectivity failure must not be an APIError")
	}
}

func TestMalformedBodyIsConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	_, err := c.Team(context.Background())

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
}

func TestEventsPassesFiltersThrough(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"events": []model.Event{
				{ID: 1, Title: "Audiência", Type: model.TypeHearing, Date: "2025-11-03"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	filters := url.Values{"assignee": {"7"}, "anything": {"goes"}}
	events, err := c.Events(context.Background(), filters)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Date != "2025-11-03" {
		t.Errorf("events = %+v", events)
	}
	if gotQuery.Get("assignee") != "7" || gotQuery.Get("anything") != "goes" {
		t.Errorf("filters not passed through: %v", gotQuery)
	}
}

func TestEventsEmptyPayloadIsNotNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	events, err := c.Events(context.Background(), nil)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if events == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestCreateEventSendsCreator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/events" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["created_by"] != float64(7) {
			t.Errorf("created_by = %v", body["created_by"])
		}
		if body["title"] != "Reunião com cliente" || body["event_date"] != "2025-11-10" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"event":   model.Event{ID: 42, Title: "Reunião com cliente", Date: "2025-11-10", Time: "14:00", Status: model.StatusPending},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	draft := model.EventDraft{Title: "Reunião com cliente", Type: model.TypeMeeting, Date: "2025-11-10", Time: "14:00"}
	created, err := c.CreateEvent(context.Background(), draft, 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil || created.ID != 42 {
		t.Errorf("created = %+v", created)
	}
}

func TestUpdateEventPartialFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/events/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "concluido" {
			t.Errorf("status = %v", body["status"])
		}
		if _, ok := body["title"]; ok {
			t.Error("partial update must not include unset fields")
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	updated, err := c.UpdateEvent(context.Background(), 42, map[string]any{"status": model.StatusDone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil echo, got %+v", updated)
	}
}

func TestDeleteEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/events/9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	if err := c.DeleteEvent(context.Background(), 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestAddComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/5/comments" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body addCommentRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.UserID != 3 || body.Content != "Cliente confirmou presença" {
			t.Errorf("body = %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	if err := c.AddComment(context.Background(), 5, 3, "Cliente confirmou presença"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
}

func TestSyncCalendar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendar/sync" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "synced": 12})
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	synced, err := c.SyncCalendar(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if synced != 12 {
		t.Errorf("synced = %d, want 12", synced)
	}
}

func TestNotificationFeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notifications/today":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "events": []model.Event{{ID: 1}}})
		case "/notifications/week":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "events": []model.Event{{ID: 1}, {ID: 2}}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, 0, nil)
	today, err := c.TodayEvents(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	week, err := c.WeekEvents(context.Background())
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if len(today) != 1 || len(week) != 2 {
		t.Errorf("today = %d events, week = %d events", len(today), len(week))
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/team" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "team": []model.User{}})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", 0, nil)
	if _, err := c.Team(context.Background()); err != nil {
		t.Fatalf("team: %v", err)
	}
}
