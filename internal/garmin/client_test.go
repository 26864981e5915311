package garmin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("username") != "rower@example.com" || r.PostForm.Get("password") != "s3cret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token":"tok-123"}`))
	})
	mux.HandleFunc("GET /api/activities", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[
			{"activityId": 101, "activityName": "Morning Row", "startTimeLocal": "2024-05-12 08:00:00",
			 "activityType": {"typeKey": "other", "subTypeKey": "rowing"}, "distance": 12000, "duration": 3600},
			{"activityId": 102, "activityName": "Commute", "startTimeLocal": "2024-05-13 08:30:00",
			 "activityType": {"typeKey": "cycling"}, "distance": 8000, "duration": 1500}
		]`))
	})
	mux.HandleFunc("GET /api/activities/101/gpx", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<gpx version="1.1"></gpx>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoginAndList(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)
	ctx := context.Background()

	if err := c.Login(ctx, "rower@example.com", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	activities, err := c.ListActivities(ctx, 20, Criteria{})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("got %d activities, want 2", len(activities))
	}
	if activities[0].ActivityID != 101 || activities[0].ActivityType.SubTypeKey != "rowing" {
		t.Errorf("unexpected first activity: %+v", activities[0])
	}
	if activities[0].StartTime().IsZero() {
		t.Error("StartTime should parse")
	}
}

func TestClientLoginRejected(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	err := c.Login(context.Background(), "rower@example.com", "wrong")
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}

func TestClientListWithoutLogin(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	_, err := c.ListActivities(context.Background(), 20, Criteria{})
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}

func TestClientDownloadGPX(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)
	ctx := context.Background()
	if err := c.Login(ctx, "rower@example.com", "s3cret"); err != nil {
		t.Fatal(err)
	}

	data, err := c.DownloadGPX(ctx, 101)
	if err != nil {
		t.Fatalf("DownloadGPX: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty GPX payload")
	}

	_, err = c.DownloadGPX(ctx, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing activity: err = %v, want ErrNotFound", err)
	}
}
