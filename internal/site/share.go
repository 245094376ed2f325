package site

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/qrcode"
)

type qrRequest struct {
	Path string `query:"path"`
	Size int    `query:"size"`
}

type qrKey struct {
	url  string
	size int
}

type pngResponse struct {
	data []byte
}

func (p pngResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(p.data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, err := w.Write(p.data)
	return err
}

// shareQR renders a QR code for a path on this site. Only same-site paths
// are accepted so the endpoint cannot be used to mint codes for other hosts.
func (s *Site) shareQR(_ handler.Context, req qrRequest) handler.Response {
	p := req.Path
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return handler.Error(errors.Join(handler.ErrBadRequest, errors.New("path must be a site-relative URL")))
	}
	target := s.content.URL(p)
	png, err := s.qrCache.GetOrCreate(qrKey{target, req.Size}, func() ([]byte, error) {
		return qrcode.Generate(target, qrcode.WithSize(req.Size))
	})
	if err != nil {
		return handler.Error(err)
	}
	return pngResponse{data: png}
}
