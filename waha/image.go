package waha

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

/* ImageSource tells where an Image value came from
 * WAHA answers QR and screenshot requests either as JSON, raw image bytes
 * or plain text, depending on its engine and the Accept header
 */
type ImageSource int

const (
	FromJSON ImageSource = iota + 1
	FromBinary
	FromText
)

// String returns the string representation of the image source
func (s ImageSource) String() string {
	switch s {
	case FromJSON:
		return "json"
	case FromBinary:
		return "binary"
	case FromText:
		return "text"
	default:
		return "unknown"
	}
}

// Image is a decoded QR code or screenshot. Binary sources become data URIs.
type Image struct {
	Source ImageSource
	Value  string
}

const (
	mimePNG  = "image/png"
	mimeJPEG = "image/jpeg"
	mimeJSON = "application/json"
)

// DecodeQR normalizes an auth/qr response
func DecodeQR(contentType string, body []byte) (Image, error) {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, mimeJSON):
		var data struct {
			QR string `json:"qr"`
		}
		if err := json.Unmarshal(body, &data); err != nil {
			return Image{}, fmt.Errorf("decoding qr response: %w", err)
		}
		return Image{Source: FromJSON, Value: data.QR}, nil
	case strings.Contains(contentType, mimePNG):
		return Image{Source: FromBinary, Value: dataurl.New(body, mimePNG).String()}, nil
	default:
		return Image{Source: FromText, Value: string(body)}, nil
	}
}

// DecodeScreenshot normalizes a screenshot response
func DecodeScreenshot(contentType string, body []byte) (Image, error) {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, mimeJSON):
		var data struct {
			Screenshot string `json:"screenshot"`
			Image      string `json:"image"`
			Data       string `json:"data"`
		}
		if err := json.Unmarshal(body, &data); err != nil {
			return Image{}, fmt.Errorf("decoding screenshot response: %w", err)
		}
		return Image{Source: FromJSON, Value: firstNonEmpty(data.Screenshot, data.Image, data.Data)}, nil
	case strings.Contains(contentType, mimeJPEG):
		return Image{Source: FromBinary, Value: dataurl.New(body, mimeJPEG).String()}, nil
	case strings.Contains(contentType, mimePNG):
		return Image{Source: FromBinary, Value: dataurl.New(body, mimePNG).String()}, nil
	default:
		return Image{Source: FromText, Value: string(body)}, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
