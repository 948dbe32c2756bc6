package http

import (
	"bytes"
	"mime/multipart"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

// newMultipart writes fields and one small file per kind and returns the content type.
func newMultipart(buf *bytes.Buffer, fields map[string]string, kinds []domain.DocumentKind) string {
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, kind := range kinds {
		fw, _ := mw.CreateFormFile(string(kind), string(kind)+".png")
		_, _ = fw.Write([]byte("png"))
	}
	_ = mw.Close()
	return mw.FormDataContentType()
}
