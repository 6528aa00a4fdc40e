package web

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
)

func setupTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	s := store.New(0)
	app := fiber.New()
	New(s).Register(app)
	return app, s
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func record(s *store.Store, expression string) *store.Record {
	a, err := expr.Trace(expression)
	return s.Add(store.Entry{
		Expression: expression,
		Normalized: a.Normalized,
		Postfix:    a.PostfixString(),
		Result:     a.Result,
		Err:        err,
	})
}

func TestDashboardEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	status, html := get(t, app, "/ui")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, html)
	}
	if !strings.Contains(html, "Calculator") {
		t.Error("expected page title in response")
	}
	if !strings.Contains(html, "No evaluations yet") {
		t.Error("expected empty state message")
	}
}

func TestDashboardWithData(t *testing.T) {
	app, s := setupTestApp(t)
	record(s, "2+3*4")
	record(s, "2+*3")

	status, html := get(t, app, "/ui")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{
		"14.0000000000",
		"MissingOperand",
		"1 succeeded",
		"1 failed",
		"/ui/evaluations/000001",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in dashboard", want)
		}
	}
}

func TestSubmitRecordsAndRedirects(t *testing.T) {
	app, s := setupTestApp(t)

	form := url.Values{"expression": {"21*(214/2) >= 7^3"}}
	req := httptest.NewRequest("POST", "/ui", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/ui/evaluations/000001" {
		t.Errorf("unexpected redirect %q", loc)
	}

	rec, err := s.Get("000001")
	if err != nil {
		t.Fatalf("expected stored evaluation: %v", err)
	}
	if rec.Result == nil || !rec.Result.Boolean || !rec.Result.Bool() {
		t.Errorf("expected boolean true result, got %+v", rec.Result)
	}
}

func TestEvaluationDetail(t *testing.T) {
	app, s := setupTestApp(t)
	rec := record(s, "2^3^2")

	status, html := get(t, app, "/ui/evaluations/"+rec.ID)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, html)
	}
	for _, want := range []string{"2 3 2 ^ ^ ", "512.0000000000", "SUCCEEDED"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in detail page", want)
		}
	}
}

func TestEvaluationNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	status, html := get(t, app, "/ui/evaluations/999999")
	if status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
	if !strings.Contains(html, "not found") {
		t.Error("expected not found message")
	}
}

func TestRootRedirect(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 302 {
		t.Errorf("expected 302, got %d", resp.StatusCode)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc..."},
		{"≥≥≥≥", 2, "≥≥..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSubmitRejectsOversizedExpression(t *testing.T) {
	app, s := setupTestApp(t)

	form := url.Values{"expression": {strings.Repeat("1+", expr.MaxExpressionLength) + "1"}}
	req := httptest.NewRequest("POST", "/ui", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "exceeds maximum length") {
		t.Error("expected length error in page")
	}
	if s.Len() != 0 {
		t.Errorf("oversized expression should not be recorded, got %d records", s.Len())
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Now()
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-90 * time.Second), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-25 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := timeAgo(tt.at); got != tt.want {
				t.Errorf("timeAgo = %q, want %q", got, tt.want)
			}
		})
	}
}
