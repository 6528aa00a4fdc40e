// Package web provides the embedded web UI for rpncalc.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// recentLimit is the number of evaluations shown on the dashboard.
const recentLimit = 20

// Handler serves the web UI pages.
type Handler struct {
	store   *store.Store
	cache   *expr.Cache
	funcMap template.FuncMap
}

type pageData struct {
	Title string
	Data  interface{}
}

// New creates a new web UI handler backed by the evaluation history.
func New(s *store.Store) *Handler {
	return &Handler{
		store: s,
		cache: expr.NewCache(0),
		funcMap: template.FuncMap{
			"timeAgo":    timeAgo,
			"formatTime": formatTime,
			"stateClass": stateClass,
			"stateIcon":  stateIcon,
			"truncate":   truncate,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, status int, page, title string, data interface{}) error {
	// Parsed per page so each page's define blocks stay separate.
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pageData{Title: title, Data: data}); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.dashboard)
	app.Post("/ui", h.submit)
	app.Get("/ui/evaluations/:id", h.evaluationDetail)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

type dashboardContent struct {
	Expression     string
	Error          string
	Recent         []*store.Record
	SucceededCount int
	FailedCount    int
}

type detailContent struct {
	Record *store.Record
	Tokens string
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	return h.renderDashboard(c, 200, c.Query("expression"), "")
}

func (h *Handler) renderDashboard(c *fiber.Ctx, status int, expression, message string) error {
	all := h.store.List()

	var succeeded, failed int
	for _, r := range all {
		switch r.State {
		case store.EvaluationSucceeded:
			succeeded++
		case store.EvaluationFailed:
			failed++
		}
	}

	// Newest first.
	recent := h.store.Last(recentLimit)
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	return h.render(c, status, "dashboard.html", "Calculator", dashboardContent{
		Expression:     expression,
		Error:          message,
		Recent:         recent,
		SucceededCount: succeeded,
		FailedCount:    failed,
	})
}

func (h *Handler) submit(c *fiber.Ctx) error {
	expression := strings.TrimSpace(c.FormValue("expression"))
	if expression == "" {
		return c.Redirect("/ui")
	}
	if len(expression) > expr.MaxExpressionLength {
		return h.renderDashboard(c, 400, "", fmt.Sprintf(
			"expression exceeds maximum length of %d characters", expr.MaxExpressionLength))
	}

	a, err := h.cache.Trace(expression)
	rec := h.store.Add(store.Entry{
		Expression: expression,
		Normalized: a.Normalized,
		Postfix:    a.PostfixString(),
		Result:     a.Result,
		Err:        err,
	})
	return c.Redirect("/ui/evaluations/" + rec.ID)
}

func (h *Handler) evaluationDetail(c *fiber.Ctx) error {
	rec, err := h.store.Get(c.Params("id"))
	if err != nil {
		return h.render(c, 404, "notfound.html", "Not found", err.Error())
	}

	// Tokens are not stored; re-lex the normalized form for display.
	var tokens string
	if rec.Normalized != "" {
		if toks, err := expr.Tokenize(rec.Normalized); err == nil {
			tokens = expr.JoinTokens(toks)
		}
	}

	return h.render(c, 200, "evaluation.html", "Evaluation "+rec.ID, detailContent{
		Record: rec,
		Tokens: tokens,
	})
}

// ageUnits are tried largest first by timeAgo.
var ageUnits = []struct {
	size time.Duration
	name string
}{
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
}

func timeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	for _, u := range ageUnits {
		if n := int(d / u.size); n > 0 {
			if n == 1 {
				return "1 " + u.name + " ago"
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func stateClass(state store.EvaluationState) string {
	switch state {
	case store.EvaluationSucceeded:
		return "state-succeeded"
	case store.EvaluationFailed:
		return "state-failed"
	default:
		return ""
	}
}

func stateIcon(state store.EvaluationState) template.HTML {
	switch state {
	case store.EvaluationSucceeded:
		return "&#10003;"
	case store.EvaluationFailed:
		return "&#10007;"
	default:
		return "&#8226;"
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
