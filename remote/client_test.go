package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseCreatedShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"bare id", `{"id":"abc"}`, "abc", true},
		{"mongo style", `{"_id":"64f"}`, "64f", true},
		{"orderId", `{"orderId":"o-7"}`, "o-7", true},
		{"data envelope", `{"data":{"id":"xyz"}}`, "xyz", true},
		{"numeric id", `{"id":42}`, "42", true},
		{"no id", `{"status":"ok"}`, "", false},
		{"not json", `oops`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCreated([]byte(tc.body))
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.ID != tc.want {
					t.Fatalf("want %q, got %q", tc.want, got.ID)
				}
				return
			}
			if err == nil {
				t.Fatalf("want error, got %+v", got)
			}
		})
	}
}

func TestSubmitOrderAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"s-1"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "opaque-token", time.Second)
	created, err := c.SubmitOrder(context.Background(), &OrderPayload{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "s-1" {
		t.Fatalf("want s-1, got %s", created.ID)
	}
	if gotAuth != "Bearer opaque-token" {
		t.Fatalf("token not attached, got %q", gotAuth)
	}
}

func TestSubmitOrderNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "", time.Second)
	if _, err := c.SubmitOrder(context.Background(), &OrderPayload{}); err == nil {
		t.Fatal("want error on 502")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "", time.Second)
	for i := 0; i < 5; i++ {
		c.SubmitOrder(context.Background(), &OrderPayload{})
	}
	if c.BreakerState() != "open" {
		t.Fatalf("breaker should be open after repeated failures, got %s", c.BreakerState())
	}
}

func TestUpdateTable(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "", time.Second)
	if err := c.UpdateTable(context.Background(), "12", "Booked"); err != nil {
		t.Fatalf("update table: %v", err)
	}
	if gotPath != "PUT /tables/12" {
		t.Fatalf("wrong request: %s", gotPath)
	}
}
