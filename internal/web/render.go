package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restokasir/kasir-web/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages that extend the base layout. The receipt is standalone: it is
// a bare print document with no site chrome.
var layoutPages = []string{"home.html", "product.html", "order_detail.html", "history.html"}

var templateFuncs = template.FuncMap{
	"rupiah": formatAmount,
	"statusLabel": func(v any) string {
		return strings.ReplaceAll(fmt.Sprintf("%v", v), "_", " ")
	},
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

func formatAmount(v any) string {
	switch amount := v.(type) {
	case decimal.Decimal:
		return domain.FormatRupiah(amount)
	case float64:
		return domain.FormatRupiahFloat(amount)
	case int64:
		return domain.FormatRupiah(decimal.NewFromInt(amount))
	case int:
		return domain.FormatRupiah(decimal.NewFromInt(int64(amount)))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Renderer holds one template set per page, each page parsed together
// with the base layout it extends.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template)

	for _, page := range layoutPages {
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+page, "templates/base.html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	receipt, err := template.New("receipt.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/receipt.html")
	if err != nil {
		return nil, fmt.Errorf("parse template receipt.html: %w", err)
	}
	templates["receipt.html"] = receipt

	return &Renderer{templates: templates}, nil
}

// Render executes the page into a buffer first so a template failure
// becomes a clean 500 instead of a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %s", page)
	}

	entry := "base"
	if tmpl.Lookup("base") == nil {
		entry = page
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
