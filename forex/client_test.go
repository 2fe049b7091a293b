package forex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestClientFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/live" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"success":true,"source":"USD","quotes":{"USDEUR":0.92,"USDJPY":151.5}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	got, err := c.Fetch(context.Background(), "USD", []string{"EUR", "JPY"})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if want := "access_key=secret&currencies=EUR%2CJPY&source=USD"; gotQuery != want {
		t.Errorf("Fetch() query = %q, want %q", gotQuery, want)
	}
	want := map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"JPY": decimal.RequireFromString("151.5"),
	}
	if len(got) != len(want) {
		t.Fatalf("Fetch() = %v, want %v", got, want)
	}
	for code, rate := range want {
		if !got[code].Equal(rate) {
			t.Errorf("Fetch()[%s] = %v, want %v", code, got[code], rate)
		}
	}
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"provider error", http.StatusOK, `{"success":false,"error":{"code":101,"info":"invalid access key"}}`, "invalid access key"},
		{"http error", http.StatusInternalServerError, `oops`, "500"},
		{"not json", http.StatusOK, `<html>`, "invalid provider response"},
		{"not a number", http.StatusOK, `{"success":true,"quotes":{"USDEUR":"abc"}}`, "not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "key").Fetch(context.Background(), "USD", []string{"EUR"})
			if err == nil {
				t.Fatal("Fetch() expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Fetch() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestClientFetchMissingQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"quotes":{"USDEUR":0.92}}`)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "key").Fetch(context.Background(), "USD", []string{"EUR", "XYZ"})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if _, ok := got["XYZ"]; ok {
		t.Errorf("Fetch() returned a rate for an unquoted currency: %v", got)
	}
}
