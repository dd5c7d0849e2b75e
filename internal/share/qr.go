package share

import (
	"fmt"
	"net/url"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/"

// DefaultQRSize is the pixel size used when the caller does not care.
const DefaultQRSize = 300

// QRImageURL builds a QR-code image URL for the target, sized size x size
// pixels.
func QRImageURL(size int, target string) string {
	if size <= 0 {
		size = DefaultQRSize
	}
	return fmt.Sprintf("%s?size=%dx%d&data=%s", qrServiceURL, size, size, url.QueryEscape(target))
}
