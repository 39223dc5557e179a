package upstream

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClientFetchAllOrders(t *testing.T) {
	const expectedURL = "http://orders.test/api/orders"
	respBody := `{"orders":[{"id":"o-1","order_number":"1001","status":"delivered","total_amount":250,"items":[{"vendor_id":"V1","store_id":"S1","price":100,"quantity":2}]}]}`

	var capturedURL string
	var capturedHeaders http.Header
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://orders.test/api/", WithAPIKey("secret"), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := client.FetchAllOrders(context.Background())
	if err != nil {
		t.Fatalf("fetch orders: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("Authorization") != "Bearer secret" {
		t.Fatal("authorization header missing")
	}
	if len(got) != 1 || got[0].ID != "o-1" || len(got[0].Items) != 1 {
		t.Fatalf("unexpected orders %+v", got)
	}
}

func TestClientFetchAllVendors(t *testing.T) {
	respBody := `{"vendors":[{"id":"V1","display_name":"Acme","verified":true,"stores":[{"id":"S1","name":"Flagship"}]}]}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/vendors" {
			t.Fatalf("unexpected path %q", req.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://orders.test/api", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := client.FetchAllVendors(context.Background())
	if err != nil {
		t.Fatalf("fetch vendors: %v", err)
	}
	if len(got) != 1 || got[0].DisplayName != "Acme" || !got[0].Verified {
		t.Fatalf("unexpected vendors %+v", got)
	}
}

func TestClientFetchOrdersForVendorStore(t *testing.T) {
	respBody := `{"orders":[{"id":"o-7","order_number":"1007","status":"shipped","total_amount":80,"items":[{"vendor_id":"V1","store_id":"S1","price":40,"quantity":2}]}]}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/vendors/V1/stores/S1/orders" {
			t.Fatalf("unexpected path %q", req.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://orders.test/api", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := client.FetchOrdersForVendorStore(context.Background(), "V1", "S1")
	if err != nil {
		t.Fatalf("fetch scoped orders: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o-7" {
		t.Fatalf("unexpected orders %+v", got)
	}
}

func TestClientFetchOrdersForVendorStoreRequiresIDs(t *testing.T) {
	client, err := NewClient("http://orders.test")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchOrdersForVendorStore(context.Background(), "V1", "  ")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientMapsForbiddenStatus(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader(`{"error":"no access"}`)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchAllVendors(context.Background())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestClientMapsServerErrorToDependency(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down")),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchAllOrders(context.Background())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
