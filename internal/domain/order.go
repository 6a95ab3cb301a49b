package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "LUNAS"
	PaymentStatusUnpaid    PaymentStatus = "BELUM_BAYAR"
	PaymentStatusExpired   PaymentStatus = "KADALUARSA"
	PaymentStatusCancelled PaymentStatus = "DIBATALKAN"
)

type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "PESANAN_DITERIMA"
	OrderStatusProcessing OrderStatus = "DIPROSES"
	OrderStatusReady      OrderStatus = "SIAP_DIKIRIM"
	OrderStatusShipped    OrderStatus = "DIKIRIM"
	OrderStatusDone       OrderStatus = "SELESAI"
	OrderStatusCancelled  OrderStatus = "DIBATALKAN"
)

// ProductSnapshot is the subset of product data the API embeds in each
// order item at creation time; later catalog edits do not touch it.
type ProductSnapshot struct {
	ID       int    `json:"id"`
	Name     string `json:"nama_produk"`
	Price    int64  `json:"harga"`
	ImageURL string `json:"gambar_url"`
}

type OrderItem struct {
	ID       int             `json:"id"`
	Quantity int             `json:"jumlah"`
	Subtotal int64           `json:"subtotal"`
	Product  ProductSnapshot `json:"produk"`
}

type OrderPaymentMethod struct {
	ID           int    `json:"id"`
	Name         string `json:"nama_metode"`
	QRISImageURL string `json:"gambar_qris_url,omitempty"`
}

type OrderPayment struct {
	ID     int                `json:"id"`
	Method OrderPaymentMethod `json:"metodepembayaran"`
}

// OrderDetail is the externally owned order record. The client never
// mutates it except by issuing create and payment-confirmation requests.
type OrderDetail struct {
	ID            int            `json:"id"`
	OrderedAt     time.Time      `json:"waktu_order"`
	CustomerName  string         `json:"nama_pelanggan"`
	WhatsAppNo    string         `json:"nomor_wa"`
	Total         float64        `json:"total_harga"`
	CashTendered  float64        `json:"jumlah_uang_tunai,omitempty"`
	Change        float64        `json:"kembalian,omitempty"`
	PaymentStatus PaymentStatus  `json:"status_pembayaran"`
	OrderStatus   OrderStatus    `json:"status_pesanan"`
	CustomerNote  string         `json:"catatan_pelanggan"`
	Items         []OrderItem    `json:"orderitems"`
	Payments      []OrderPayment `json:"pembayaran"`
}

// OrderLine is a cart line in the shape the create-order endpoint
// expects: the full product fields plus the quantity under "jumlah".
type OrderLine struct {
	Product
	Quantity int `json:"jumlah"`
}

// OrderTypeOffline tags orders placed at the counter, the only channel
// this client serves.
const OrderTypeOffline = "OFFLINE"

type CreateOrderRequest struct {
	CartItems       []OrderLine `json:"cartItems"`
	CustomerName    string      `json:"nama_pelanggan"`
	OrderType       string      `json:"tipe_pesanan"`
	WhatsAppNo      string      `json:"nomor_wa"`
	Total           float64     `json:"total_harga"`
	CustomerNote    string      `json:"catatan_pelanggan"`
	PaymentMethodID int         `json:"metode_pembayaran_id"`
	CashTendered    float64     `json:"jumlah_uang_tunai"`
	Change          float64     `json:"kembalian"`
}
