package web

import "net/http"

// Register mounts every page and cart endpoint on mux. wrap is applied
// to each handler; pass the telemetry route wrapper in main, nil in
// tests.
func (h *Handler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.HandlerFunc) {
	if wrap == nil {
		wrap = func(f http.HandlerFunc) http.HandlerFunc { return f }
	}

	mux.HandleFunc("GET /{$}", wrap(h.HandleHome))
	mux.HandleFunc("GET /menu/{id}", wrap(h.HandleProductDetail))

	mux.HandleFunc("GET /cart", wrap(h.HandleCartGet))
	mux.HandleFunc("POST /cart/add", wrap(h.HandleCartAdd))
	mux.HandleFunc("POST /cart/update", wrap(h.HandleCartUpdate))
	mux.HandleFunc("POST /cart/clear", wrap(h.HandleCartClear))

	mux.HandleFunc("POST /checkout", wrap(h.HandleCheckout))
	mux.HandleFunc("GET /pesanan/{id}", wrap(h.HandleOrderDetail))
	mux.HandleFunc("POST /pesanan/{id}/konfirmasi", wrap(h.HandleConfirmPayment))
	mux.HandleFunc("GET /riwayat", wrap(h.HandleHistory))
	mux.HandleFunc("GET /cetak/{id}", wrap(h.HandleReceipt))
}
