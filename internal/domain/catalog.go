package domain

import "strings"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nama_kategori"`
}

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"nama_produk"`
	Description string   `json:"deskripsi"`
	Price       int64    `json:"harga"`
	ImageURL    string   `json:"gambar_url"`
	CategoryID  int      `json:"kategori_id"`
	Category    Category `json:"kategori"`
}

type PaymentMethod struct {
	ID            int    `json:"id"`
	Name          string `json:"nama_metode"`
	IsActive      bool   `json:"is_active"`
	AccountNumber string `json:"nomor_rekening,omitempty"`
	AccountName   string `json:"nama_rekening,omitempty"`
	QRISImageURL  string `json:"gambar_qris_url,omitempty"`
}

// IsCash reports whether the method settles in physical cash, by
// substring match on the display name. The upstream API carries no
// explicit method-kind tag, so renamed methods that contain neither
// word are treated as non-cash.
func (m PaymentMethod) IsCash() bool {
	name := strings.ToLower(m.Name)
	return strings.Contains(name, "cash") || strings.Contains(name, "tunai")
}
