package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"simplifai-backend/internal/handlers"
	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/middleware"
	"simplifai-backend/internal/models"
	"simplifai-backend/internal/services"
)

type echoProvider struct {
	prompts []string
}

func (p *echoProvider) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return "echo: " + prompt, nil
}

func (p *echoProvider) Chat(ctx context.Context, apiKey string, history []models.ChatMessage, message string) (string, error) {
	return "echo: " + message, nil
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *echoProvider) {
	t.Helper()
	log := logger.Nop()
	provider := &echoProvider{}
	relay := services.NewRelayService(services.NewKeyResolver("server-key"), provider, true, log)

	h := New(log,
		handlers.NewRelayHandler(relay),
		handlers.NewChatHandler(relay),
		handlers.NewHealthHandler("gemini-2.0-flash", relay.HasFallbackKey()),
		opts,
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, provider
}

func defaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   64 * 1024,
		RequestTimeout: 5 * time.Second,
	}
}

func TestRouter_RelayRoutes(t *testing.T) {
	srv, provider := newTestServer(t, defaultOptions())

	for _, prefix := range []string{"", "/api/v1"} {
		resp, err := http.Post(srv.URL+prefix+"/translate?target_language=Italian", "application/json", strings.NewReader(`{"text":"Hello"}`))
		if err != nil {
			t.Fatalf("POST %s/translate: %v", prefix, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s/translate: expected status %d, got %d", prefix, http.StatusOK, resp.StatusCode)
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Errorf("%s/translate: missing X-Request-ID", prefix)
		}

		var body models.TranslateResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.TranslatedText != "echo: Translate the following text to Italian: Hello" {
			t.Fatalf("unexpected translated_text: %q", body.TranslatedText)
		}
	}

	if len(provider.prompts) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(provider.prompts))
	}
}

func TestRouter_ChatRoute(t *testing.T) {
	srv, _ := newTestServer(t, defaultOptions())

	body := `{"history":[{"role":"user","parts":["Hi"]},{"role":"model","parts":["Hello"]}],"message":"How are you?"}`
	resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /chat: %v", err)
	}
	defer resp.Body.Close()

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Response != "echo: How are you?" {
		t.Fatalf("unexpected response: %q", out.Response)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, defaultOptions())

	resp, err := http.Get(srv.URL + "/simplify")
	if err != nil {
		t.Fatalf("GET /simplify: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, resp.StatusCode)
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	opts := defaultOptions()
	opts.MaxBodyBytes = 16
	srv, provider := newTestServer(t, opts)

	resp, err := http.Post(srv.URL+"/simplify", "application/json", strings.NewReader(`{"text":"`+strings.Repeat("a", 64)+`"}`))
	if err != nil {
		t.Fatalf("POST /simplify: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, resp.StatusCode)
	}
	if len(provider.prompts) != 0 {
		t.Fatalf("expected no provider calls, got %d", len(provider.prompts))
	}
}

func TestRouter_RateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)

	opts := defaultOptions()
	opts.Limiter = limiter
	srv, _ := newTestServer(t, opts)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		resp, err := http.Post(srv.URL+"/simplify", "application/json", strings.NewReader(`{"text":"a"}`))
		if err != nil {
			t.Fatalf("POST /simplify: %v", err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}

	// Health is outside the limited group.
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected health status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func postFrom(t *testing.T, url, forwardedFor string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(`{"text":"a"}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRouter_RateLimitIgnoresForwardedForByDefault(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)

	opts := defaultOptions()
	opts.Limiter = limiter
	srv, _ := newTestServer(t, opts)

	first := postFrom(t, srv.URL+"/simplify", "203.0.113.1")
	second := postFrom(t, srv.URL+"/simplify", "203.0.113.2")

	if first != http.StatusOK || second != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429] despite changing X-Forwarded-For, got [%d %d]", first, second)
	}
}

func TestRouter_RateLimitTrustsForwardedForWhenEnabled(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)

	opts := defaultOptions()
	opts.Limiter = limiter
	opts.TrustProxyHeaders = true
	srv, _ := newTestServer(t, opts)

	first := postFrom(t, srv.URL+"/simplify", "203.0.113.1")
	second := postFrom(t, srv.URL+"/simplify", "203.0.113.2")
	third := postFrom(t, srv.URL+"/simplify", "203.0.113.1")

	if first != http.StatusOK || second != http.StatusOK || third != http.StatusTooManyRequests {
		t.Fatalf("expected [200 200 429] keyed by forwarded IP, got [%d %d %d]", first, second, third)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, defaultOptions())

	resp, err := http.Post(srv.URL+"/simplify", "application/json", strings.NewReader(`{"text":"a"}`))
	if err != nil {
		t.Fatalf("POST /simplify: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(buf.String(), `simplifai_relay_total{operation="simplify",outcome="ok"}`) {
		t.Fatalf("expected relay counter in metrics output")
	}
}
