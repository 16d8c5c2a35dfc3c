package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tair/population/pkg/logger"
)

func completedLine(t *testing.T, out *bytes.Buffer) map[string]interface{} {
	t.Helper()
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var line map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("decode log line: %v (%s)", err, scanner.Text())
		}
		if line["message"] == "HTTP request completed" {
			return line
		}
	}
	t.Fatalf("no completion line in %s", out.String())
	return nil
}

func TestAccessLogTraceID(t *testing.T) {
	prevLogger, prevProvider := logger.Logger, otel.GetTracerProvider()
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		logger.Logger = prevLogger
		otel.SetTracerProvider(prevProvider)
		_ = provider.Shutdown(context.Background())
	})

	tests := []struct {
		name      string
		tracing   bool
		wantTrace bool
	}{
		{"with tracing", true, true},
		{"without tracing", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			logger.Logger = zerolog.New(&out)

			router := mux.NewRouter()
			Register(router, Config{ServiceName: "inventory", EnableTracing: tt.tracing})
			router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			if rec.Code != http.StatusNoContent {
				t.Fatalf("status = %d, want 204", rec.Code)
			}

			traceID, _ := completedLine(t, &out)["trace_id"].(string)
			if tt.wantTrace && (len(traceID) != 32 || traceID == "no-trace") {
				t.Errorf("trace_id = %q, want a 32 hex digit id", traceID)
			}
			if !tt.wantTrace && traceID != "no-trace" {
				t.Errorf("trace_id = %q, want no-trace", traceID)
			}
		})
	}
}
