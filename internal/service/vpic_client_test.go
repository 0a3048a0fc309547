package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const camryResponse = `{
	"Count": 1,
	"Message": "Results returned successfully",
	"SearchCriteria": "VIN:4T1B11HK5LU000000",
	"Results": [{
		"VIN": "4T1B11HK5LU000000",
		"Make": "TOYOTA",
		"Model": "Camry",
		"ModelYear": "2020",
		"BodyClass": "Sedan/Saloon",
		"FuelTypePrimary": "Gasoline",
		"DriveType": "FWD/Front-Wheel Drive",
		"EngineModel": "A25A-FKS",
		"EngineCylinders": "4",
		"EngineHP": "203",
		"DisplacementCC": "2500",
		"SuggestedVIN": "",
		"TransmissionStyle": "Automatic",
		"ErrorCode": "0"
	}]
}`

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32, *atomic.Value) {
	t.Helper()
	var hits int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		path.Store(r.URL.RequestURI())
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &path
}

func TestVPICClient_Decode_OK(t *testing.T) {
	srv, _, path := newTestServer(t, http.StatusOK, camryResponse)
	client := NewVPICClient(srv.URL+"/decodevinvalues/{vin}?format=json", time.Second)

	v, err := client.Decode(context.Background(), "4T1B11HK5LU000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := path.Load().(string); got != "/decodevinvalues/4T1B11HK5LU000000?format=json" {
		t.Errorf("unexpected request path %q", got)
	}
	if v.Make != "TOYOTA" || v.Model != "Camry" || v.ModelYear != "2020" {
		t.Errorf("unexpected vehicle %+v", v)
	}
	if v.DisplacementCC != "2500" || v.EngineHP != "203" {
		t.Errorf("unexpected engine fields %+v", v)
	}
}

func TestVPICClient_Decode_NoResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Test empty results", `{"Count":0,"Message":"","SearchCriteria":"","Results":[]}`},
		{"Test absent results", `{"Count":0}`},
		{"Test null results", `{"Results":null}`},
		{"Test empty make", `{"Count":1,"Results":[{"Make":"","Model":"X"}]}`},
		{"Test null make", `{"Count":1,"Results":[{"Make":null,"Model":"X"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, http.StatusOK, tt.body)
			client := NewVPICClient(srv.URL+"/{vin}", time.Second)

			_, err := client.Decode(context.Background(), "1HGCM82633A004352")
			if !errors.Is(err, ErrNoResults) {
				t.Errorf("expected ErrNoResults, got %v", err)
			}
		})
	}
}

func TestVPICClient_Decode_WhitespaceMake(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusOK, `{"Count":1,"Results":[{"Make":" ","Model":"X"}]}`)
	client := NewVPICClient(srv.URL+"/{vin}", time.Second)

	v, err := client.Decode(context.Background(), "1HGCM82633A004352")
	if err != nil {
		t.Fatalf("a non-empty make is a result, got %v", err)
	}
	if v.Make != " " || v.Model != "X" {
		t.Errorf("unexpected vehicle %+v", v)
	}
}

func TestVPICClient_Decode_RequestFailed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"Test server error", http.StatusInternalServerError, "oops", "unexpected status code: 500"},
		{"Test malformed json", http.StatusOK, "{not json", "failed to parse decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, tt.status, tt.body)
			client := NewVPICClient(srv.URL+"/{vin}", time.Second)

			_, err := client.Decode(context.Background(), "1HGCM82633A004352")
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %v", err)
			}
			if !strings.Contains(reqErr.Detail, tt.detail) {
				t.Errorf("detail %q does not contain %q", reqErr.Detail, tt.detail)
			}
		})
	}
}

func TestVPICClient_Decode_EmptyTemplate(t *testing.T) {
	client := NewVPICClient("", time.Second)

	_, err := client.Decode(context.Background(), "1HGCM82633A004352")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}

func TestVPICClient_Decode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewVPICClient(srv.URL+"/{vin}", 50*time.Millisecond)
	_, err := client.Decode(context.Background(), "1HGCM82633A004352")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}

func TestVPICClient_Decode_NoCaching(t *testing.T) {
	srv, hits, _ := newTestServer(t, http.StatusOK, camryResponse)
	client := NewVPICClient(srv.URL+"/{vin}", time.Second)

	for i := 0; i < 2; i++ {
		if _, err := client.Decode(context.Background(), "4T1B11HK5LU000000"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := atomic.LoadInt32(hits); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestVPICClient_URL(t *testing.T) {
	client := NewVPICClient(DefaultURLTemplate, 0)
	want := "https://vpic.nhtsa.dot.gov/api/vehicles/decodevinvalues/1HGCM82633A004352?format=json"
	if got := client.URL("1HGCM82633A004352"); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
