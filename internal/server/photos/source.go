package photos

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/netx"
)

func (g *Gateway) fetch(ctx context.Context, source string) ([]byte, string, error) {
	source = strings.TrimSpace(source)

	var (
		body        []byte
		contentType string
		err         error
	)

	switch {
	case strings.HasPrefix(source, "data:"):
		body, contentType, err = decodeDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		body, contentType, err = netx.Download(ctx, g.httpClient, source, MaxPhotoBytes)
	default:
		return nil, "", common.ErrUnsupportedImage
	}
	if err != nil {
		return nil, "", err
	}

	mediaType := normalizeMediaType(contentType)
	if mediaType == "" {
		mediaType = http.DetectContentType(body)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, "", fmt.Errorf("%w: %s", common.ErrUnsupportedImage, mediaType)
	}

	return body, mediaType, nil
}

// decodeDataURI parses data:[<mediatype>][;base64],<payload>.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: malformed data URI", common.ErrUnsupportedImage)
	}

	isBase64 := strings.HasSuffix(header, ";base64")
	mediaType := strings.TrimSuffix(header, ";base64")

	var (
		body []byte
		err  error
	)
	if isBase64 {
		body, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			body, err = base64.RawStdEncoding.DecodeString(payload)
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		body = []byte(s)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrUnsupportedImage, err)
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", common.ErrUnsupportedImage)
	}
	if len(body) > MaxPhotoBytes {
		return nil, "", fmt.Errorf("%w: payload exceeds %d bytes", common.ErrUnsupportedImage, MaxPhotoBytes)
	}

	return body, mediaType, nil
}

func normalizeMediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

var extensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/avif":    ".avif",
}

func extensionFor(mediaType string) string {
	return extensions[mediaType]
}
