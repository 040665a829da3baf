package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the link a guest scans at the table to open
// the ordering page for that table.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(tableNumber int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.TableURL(tableNumber), qrcode.Medium, size)
}

func (g DefaultQRGenerator) TableURL(tableNumber int) string {
	return fmt.Sprintf("%s/order?table=%d", g.BaseURL, tableNumber)
}
