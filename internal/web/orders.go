package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/restokasir/kasir-web/internal/checkout"
	"github.com/restokasir/kasir-web/internal/domain"
)

var taxDivisor = decimal.RequireFromString("1.11")

// HandleCheckout submits the session cart as an order. Success clears
// the cart and lands on the order-detail page; any failure redirects
// back to the catalog with the message, cart untouched.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "/", "form tidak valid")
		return
	}

	methodID, _ := strconv.Atoi(r.FormValue("metode_pembayaran_id"))
	tendered, _ := strconv.ParseInt(r.FormValue("uang_tunai"), 10, 64)

	form := checkout.Form{
		CustomerName:    r.FormValue("nama_pelanggan"),
		Note:            r.FormValue("catatan"),
		PaymentMethodID: methodID,
		CashTendered:    tendered,
	}

	orderID, err := h.checkout.Submit(r.Context(), sessionID(w, r), form)
	if err != nil {
		h.logger.Warn("checkout rejected", "error", err)
		h.redirectWithError(w, r, "/", err.Error())
		return
	}

	http.Redirect(w, r, "/pesanan/"+strconv.Itoa(orderID), http.StatusSeeOther)
}

type orderView struct {
	Order      *domain.OrderDetail
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Failed     bool
	Flash      string
	FlashError string
}

// orderAmounts backs out the pre-tax breakdown from the stored total,
// the same derivation the API's own receipts use.
func orderAmounts(order *domain.OrderDetail) (subtotal, tax decimal.Decimal) {
	total := decimal.NewFromFloat(order.Total)
	subtotal = total.Div(taxDivisor)
	tax = total.Sub(subtotal)
	return subtotal, tax
}

func (h *Handler) HandleOrderDetail(w http.ResponseWriter, r *http.Request) {
	order, failed, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	view := orderView{
		Order:      order,
		Failed:     failed,
		Flash:      r.URL.Query().Get("info"),
		FlashError: r.URL.Query().Get("error"),
	}
	status := http.StatusOK
	if failed {
		status = http.StatusBadGateway
	} else if order == nil {
		status = http.StatusNotFound
	} else {
		view.Subtotal, view.Tax = orderAmounts(order)
	}

	if err := h.renderer.Render(w, status, "order_detail.html", view); err != nil {
		h.renderFailed(w, err)
	}
}

// HandleConfirmPayment forwards the uploaded payment proof to the
// confirmation endpoint and bounces back to the detail page, which
// re-reads the order so the new payment status shows. A failed upload
// changes nothing.
func (h *Handler) HandleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	target := "/pesanan/" + strconv.Itoa(id)

	file, header, err := r.FormFile("bukti")
	if err != nil {
		h.redirectWithError(w, r, target, "silakan pilih file bukti pembayaran")
		return
	}
	defer func() { _ = file.Close() }()

	message, err := h.api.ConfirmPayment(r.Context(), id, header.Filename, file)
	if err != nil {
		h.logger.Error("failed to upload payment proof", "error", err, "order_id", id)
		h.redirectWithError(w, r, target, "gagal mengunggah bukti pembayaran")
		return
	}
	if message == "" {
		message = "bukti pembayaran diterima"
	}

	h.logger.Info("payment proof uploaded", "order_id", id)
	http.Redirect(w, r, target+"?info="+url.QueryEscape(message), http.StatusSeeOther)
}

type historyView struct {
	Orders []domain.OrderDetail
	Failed bool
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	view := historyView{}
	orders, err := h.api.Orders(r.Context())
	if err != nil {
		h.logger.Error("failed to load order history", "error", err)
		view.Failed = true
	}
	view.Orders = orders

	if err := h.renderer.Render(w, http.StatusOK, "history.html", view); err != nil {
		h.renderFailed(w, err)
	}
}

// HandleReceipt renders the print-formatted receipt. The page opens in
// its own tab and fires window.print() after a short delay so layout
// settles first.
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	order, failed, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	view := orderView{Order: order, Failed: failed}
	status := http.StatusOK
	if failed {
		status = http.StatusBadGateway
	} else if order == nil {
		status = http.StatusNotFound
	}

	if err := h.renderer.Render(w, status, "receipt.html", view); err != nil {
		h.renderFailed(w, err)
	}
}

// loadOrder fetches the order in the path; ok is false when the id is
// not even numeric and a 404 was already written.
func (h *Handler) loadOrder(w http.ResponseWriter, r *http.Request) (order *domain.OrderDetail, failed bool, ok bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false, false
	}

	order, err = h.api.Order(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load order", "error", err, "order_id", id)
		return nil, true, true
	}
	return order, false, true
}
