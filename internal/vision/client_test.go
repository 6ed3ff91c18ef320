package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type annotateStub struct {
	t        *testing.T
	tier1    annotateResponse
	tier2    annotateResponse
	calls    atomic.Int32
	failWith int // HTTP status to fail every call with, 0 for success
}

func (s *annotateStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		if s.failWith != 0 {
			w.WriteHeader(s.failWith)
			return
		}

		var batch annotateBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			s.t.Errorf("decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if len(batch.Requests) != 1 {
			s.t.Errorf("expected 1 request, got %d", len(batch.Requests))
		}

		resp := s.tier1
		for _, f := range batch.Requests[0].Features {
			if f.Type == featureFace {
				resp = s.tier2
			}
		}
		json.NewEncoder(w).Encode(annotateBatchResponse{Responses: []annotateResponse{resp}})
	}
}

func newStubClient(t *testing.T, stub *annotateStub) *Client {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)
	return NewClient("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithRetry(1, time.Millisecond),
	)
}

func TestExtractSkipsFaceTierOnSubstantialText(t *testing.T) {
	stub := &annotateStub{
		t: t,
		tier1: annotateResponse{
			FullTextAnnotation: &fullTextAnnotation{Text: "REGISTRO GERAL 123456789"},
			LabelAnnotations:   []entityAnnotation{{Description: "Document"}},
		},
	}
	client := newStubClient(t, stub)

	signals, calls, err := client.Extract(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (face tier skipped)", calls)
	}
	if stub.calls.Load() != 1 {
		t.Fatalf("server saw %d calls, want 1", stub.calls.Load())
	}
	if signals.Text != "REGISTRO GERAL 123456789" {
		t.Fatalf("text = %q", signals.Text)
	}
	if len(signals.Labels) != 1 || signals.Labels[0] != "document" {
		t.Fatalf("labels = %v, want lowercased", signals.Labels)
	}
}

func TestExtractRunsFaceTierOnSparseText(t *testing.T) {
	stub := &annotateStub{
		t:     t,
		tier1: annotateResponse{LabelAnnotations: []entityAnnotation{{Description: "Person"}}},
		tier2: annotateResponse{
			FaceAnnotations: []faceAnnotation{{
				FdBoundingPoly: boundingPoly{Vertices: []vertex{
					{X: 10, Y: 20}, {X: 110, Y: 20}, {X: 110, Y: 140}, {X: 10, Y: 140},
				}},
			}},
		},
	}
	client := newStubClient(t, stub)

	signals, calls, err := client.Extract(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (text below threshold)", calls)
	}
	if len(signals.Faces) != 1 {
		t.Fatalf("faces = %v", signals.Faces)
	}
	box := signals.Faces[0]
	if box.Width != 100 || box.Height != 120 {
		t.Fatalf("face box = %+v", box)
	}
}

func TestExtractServerFailureIsTransportError(t *testing.T) {
	stub := &annotateStub{t: t, failWith: http.StatusServiceUnavailable}
	client := newStubClient(t, stub)

	_, calls, err := client.Extract(context.Background(), []byte("img"))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0 on failed tier-1", calls)
	}
}

func TestExtractRetriesTransientFailures(t *testing.T) {
	var first atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first.CompareAndSwap(false, true) {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(annotateBatchResponse{Responses: []annotateResponse{{
			FullTextAnnotation: &fullTextAnnotation{Text: "texto longo o bastante"},
		}}})
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithRetry(3, time.Millisecond),
	)
	signals, calls, err := client.Extract(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 after retry", calls)
	}
	if signals.Text == "" {
		t.Fatal("expected text from retried call")
	}
}

func TestOfflineExtractorIsDeterministicAndFree(t *testing.T) {
	offline := NewOfflineExtractor()

	photo, calls, err := offline.ExtractFile(context.Background(), "/tmp/foto-3x4.jpg")
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if calls != 0 {
		t.Fatalf("offline calls = %d, want 0", calls)
	}
	if len(photo.Faces) == 0 || photo.Width != 300 || photo.Height != 400 {
		t.Fatalf("photo signals = %+v", photo)
	}

	cpf, _, _ := offline.ExtractFile(context.Background(), "cpf-frente.png")
	if cpf.Text == "" {
		t.Fatal("expected synthetic CPF text")
	}

	unknown, _, _ := offline.ExtractFile(context.Background(), "misterio.png")
	if unknown.Text != "" || len(unknown.Faces) != 0 {
		t.Fatalf("unknown filename should yield empty signals: %+v", unknown)
	}
}
