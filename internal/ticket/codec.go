package ticket

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
	"time"
	"unicode"

	"busify/internal/shared/errs"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

const (
	codeRandAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeRandLength   = 4
	qrImageSize      = 256
	dataURLPrefix    = "data:image/png;base64,"
)

// cityAbbreviation takes the first three letters of a city name, uppercased.
// "New York" becomes "NEW".
func cityAbbreviation(city string) (string, error) {
	var letters []rune
	for _, r := range city {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				return string(letters), nil
			}
		}
	}
	return "", errs.ValidationError{Field: "city", Msg: fmt.Sprintf("%q has fewer than three letters", city)}
}

// Generate builds a ticket code of the form ABB-ABB-MMDD-RAND4, matching
// ^[A-Z]{3}-[A-Z]{3}-\d{4}-[A-Z0-9]{4}$. The random suffix comes from
// crypto/rand; uniqueness across bookings is enforced by the caller against
// the persisted code index.
func Generate(originCity, destinationCity, isoDate string) (string, error) {
	origin, err := cityAbbreviation(originCity)
	if err != nil {
		return "", err
	}
	destination, err := cityAbbreviation(destinationCity)
	if err != nil {
		return "", err
	}

	departure, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return "", errs.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	suffix := make([]byte, codeRandLength)
	if _, err := rand.Read(suffix); err != nil {
		return "", errs.UpstreamError{Op: "random suffix", Err: err}
	}
	for i, b := range suffix {
		suffix[i] = codeRandAlphabet[int(b)%len(codeRandAlphabet)]
	}

	return fmt.Sprintf("%s-%s-%s-%s", origin, destination, departure.Format("0102"), suffix), nil
}

// Encode renders a code as a PNG QR image wrapped in a base64 data URL, so
// clients can embed it directly in an <img> tag.
func Encode(code string) (string, error) {
	if code == "" {
		return "", errs.ValidationError{Field: "code", Msg: "must not be empty"}
	}
	data, err := qrcode.Encode(code, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", errs.UpstreamError{Op: "qr encode", Err: err}
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// Decode reads a payload produced by Encode back into the exact code text.
func Decode(payload string) (string, error) {
	raw := strings.TrimPrefix(payload, dataURLPrefix)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errs.ValidationError{Field: "payload", Msg: "not base64", Err: err}
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errs.ValidationError{Field: "payload", Msg: "not a PNG image", Err: err}
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errs.UpstreamError{Op: "qr decode", Err: err}
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bitmap, nil)
	if err != nil {
		return "", errs.ValidationError{Field: "payload", Msg: "no QR code found", Err: err}
	}
	return result.GetText(), nil
}
