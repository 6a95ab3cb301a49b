package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/restokasir/kasir-web/internal/cart"
)

// cartResponse is the JSON shape the order-summary script consumes.
// Amounts are decimal strings so full precision survives the wire;
// total_display is pre-formatted for the badge.
type cartResponse struct {
	Lines        []cart.Line `json:"lines"`
	TotalItems   int         `json:"total_items"`
	Subtotal     string      `json:"subtotal"`
	Tax          string      `json:"tax"`
	Total        string      `json:"total"`
	TotalDisplay string      `json:"total_display"`
}

func (h *Handler) HandleCartGet(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, h.carts.Get(sessionID(w, r)))
}

func (h *Handler) HandleCartAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "product_id tidak valid")
		return
	}

	// Price and name come from the catalog, never from the client.
	product, err := h.api.MenuItem(r.Context(), productID)
	if err != nil {
		h.logger.Error("failed to load product for cart", "error", err, "product_id", productID)
		h.writeError(w, http.StatusBadGateway, "gagal memuat produk")
		return
	}
	if product == nil {
		h.writeError(w, http.StatusNotFound, "produk tidak ditemukan")
		return
	}

	sid := sessionID(w, r)
	h.carts.Add(sid, *product)
	if h.cartAdds != nil {
		h.cartAdds.Add(r.Context(), 1)
	}
	h.logger.Info("product added to cart", "product_id", productID)
	h.writeCart(w, h.carts.Get(sid))
}

func (h *Handler) HandleCartUpdate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "product_id tidak valid")
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "quantity tidak valid")
		return
	}

	sid := sessionID(w, r)
	h.carts.SetQuantity(sid, productID, quantity)
	h.writeCart(w, h.carts.Get(sid))
}

func (h *Handler) HandleCartClear(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	h.carts.Clear(sid)
	h.writeCart(w, h.carts.Get(sid))
}

func (h *Handler) writeCart(w http.ResponseWriter, c cart.Cart) {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	h.writeJSON(w, http.StatusOK, cartResponse{
		Lines:        lines,
		TotalItems:   c.TotalItems(),
		Subtotal:     c.Subtotal().String(),
		Tax:          c.Tax().String(),
		Total:        c.Total().String(),
		TotalDisplay: formatAmount(c.Total()),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
