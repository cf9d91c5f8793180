package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"virtualagent-backend/internal/models"
)

type fakeUploader struct {
	url      string
	key      string
	err      error
	lastName string
	lastType string
	lastSize int
}

func (f *fakeUploader) Upload(_ context.Context, filename, contentType string, data []byte) (string, string, error) {
	f.lastName = filename
	f.lastType = contentType
	f.lastSize = len(data)
	return f.url, f.key, f.err
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload_Success(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.example.com/avatar.glb", key: "uploads/avatar.glb"}
	h := NewUploadHandler(uploader)

	body, contentType := multipartFile(t, "avatar.glb", "model/gltf-binary", make([]byte, 2048))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.HandleUpload(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d (body: %s)", rr.Code, rr.Body.String())
	}
	var resp models.UploadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.URL != uploader.url || resp.Size != 2048 {
		t.Fatalf("response = %+v", resp)
	}
	if uploader.lastName != "avatar.glb" || uploader.lastType != "model/gltf-binary" {
		t.Fatalf("uploader received %q (%s)", uploader.lastName, uploader.lastType)
	}
}

func TestHandleUpload_UnsupportedType(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{}
	h := NewUploadHandler(uploader)

	body, contentType := multipartFile(t, "setup.exe", "application/x-msdownload", make([]byte, 128))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.HandleUpload(rr, req)

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rr.Code)
	}
	if uploader.lastName != "" {
		t.Fatal("uploader was called for an unsupported type")
	}
}

func TestHandleUpload_NotConfigured(t *testing.T) {
	t.Parallel()

	h := NewUploadHandler(nil)

	body, contentType := multipartFile(t, "logo.png", "image/png", make([]byte, 128))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.HandleUpload(rr, req)

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rr.Code)
	}
}

func TestHandleUpload_OversizedBodyCutOffEarly(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{}
	h := NewUploadHandler(uploader)

	body, contentType := multipartFile(t, "big.pdf", "application/pdf", make([]byte, maxUploadBytes+(2<<20)))
	total := int64(body.Len())
	counted := &countingReader{r: body}
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", counted)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.HandleUpload(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
	if uploader.lastName != "" {
		t.Fatal("uploader was called for an oversized file")
	}
	if counted.n >= total {
		t.Fatalf("handler consumed the full %d-byte body instead of stopping at the cap", total)
	}
}
