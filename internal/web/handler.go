// Package web serves the POS screens: catalog with the order summary,
// order detail, history, and the printable receipt. All catalog and
// order data is read fresh from the commerce API on every request;
// the only state owned here is the in-memory session cart.
package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/restokasir/kasir-web/internal/cart"
	"github.com/restokasir/kasir-web/internal/checkout"
	"github.com/restokasir/kasir-web/internal/domain"
	"github.com/restokasir/kasir-web/internal/upstream"
)

type Handler struct {
	carts    *cart.Store
	api      *upstream.Client
	checkout *checkout.Service
	renderer *Renderer
	logger   *slog.Logger
	cartAdds metric.Int64Counter
}

func NewHandler(carts *cart.Store, api *upstream.Client, checkoutSvc *checkout.Service, renderer *Renderer, logger *slog.Logger) *Handler {
	meter := otel.Meter("web")
	cartAdds, err := meter.Int64Counter("pos.cart.adds",
		metric.WithDescription("Products added to session carts"))
	if err != nil {
		logger.Error("failed to create cart adds counter", "error", err)
	}

	return &Handler{
		carts:    carts,
		api:      api,
		checkout: checkoutSvc,
		renderer: renderer,
		logger:   logger,
		cartAdds: cartAdds,
	}
}

type homeView struct {
	Products         []domain.Product
	ProductsFailed   bool
	Categories       []domain.Category
	CategoriesFailed bool
	Methods          []domain.PaymentMethod
	MethodsFailed    bool
	SelectedCategory int
	Cart             cart.Cart
	FlashError       string
}

// HandleHome renders the catalog with the order summary sidebar. The
// three catalog fetches run concurrently and fail independently: a
// dead payment-method endpoint still leaves the menu browsable, with
// only its own section flagged.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := homeView{
		FlashError: r.URL.Query().Get("error"),
	}
	if raw := r.URL.Query().Get("kategori"); raw != "" {
		view.SelectedCategory, _ = strconv.Atoi(raw)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		products, err := h.api.Menu(ctx)
		if err != nil {
			h.logger.Error("failed to load menu", "error", err)
			view.ProductsFailed = true
			return
		}
		view.Products = products
	}()
	go func() {
		defer wg.Done()
		categories, err := h.api.Categories(ctx)
		if err != nil {
			h.logger.Error("failed to load categories", "error", err)
			view.CategoriesFailed = true
			return
		}
		view.Categories = categories
	}()
	go func() {
		defer wg.Done()
		methods, err := h.api.PaymentMethods(ctx)
		if err != nil {
			h.logger.Error("failed to load payment methods", "error", err)
			view.MethodsFailed = true
			return
		}
		view.Methods = methods
	}()
	wg.Wait()

	if view.SelectedCategory != 0 {
		filtered := view.Products[:0]
		for _, p := range view.Products {
			if p.CategoryID == view.SelectedCategory {
				filtered = append(filtered, p)
			}
		}
		view.Products = filtered
	}

	view.Cart = h.carts.Get(sessionID(w, r))

	if err := h.renderer.Render(w, http.StatusOK, "home.html", view); err != nil {
		h.renderFailed(w, err)
	}
}

type productView struct {
	Product *domain.Product
	Failed  bool
}

func (h *Handler) HandleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := productView{}
	product, err := h.api.MenuItem(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load product", "error", err, "product_id", id)
		view.Failed = true
	}
	view.Product = product

	status := http.StatusOK
	if product == nil && !view.Failed {
		status = http.StatusNotFound
	}
	if err := h.renderer.Render(w, status, "product.html", view); err != nil {
		h.renderFailed(w, err)
	}
}

// redirectWithError sends the user back with the failure message in
// the query string; the target page shows it as a flash banner.
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, target, message string) {
	http.Redirect(w, r, target+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

func (h *Handler) renderFailed(w http.ResponseWriter, err error) {
	h.logger.Error("failed to render page", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
