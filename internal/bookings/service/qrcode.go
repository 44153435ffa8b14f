package service

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const invoiceQRSize = 256

// invoiceQRCode encodes the invoice reference as a PNG data URI for the
// printable invoice. Empty on encoder failure.
func invoiceQRCode(invoiceNumber, bookingID string) string {
	png, err := qrcode.Encode(fmt.Sprintf("TRAVELNEST:%s:%s", invoiceNumber, bookingID), qrcode.Medium, invoiceQRSize)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
