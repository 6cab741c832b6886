package handlers

import (
	"net/http"

	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// maxUploadMemory, multipart parse sırasında RAM'de tutulacak üst sınır.
// Kalanı geçici dosyaya taşar.
const maxUploadMemory = 10 << 20 // 10 MB

// UploadHandler, admin görsel yükleme endpoint'i.
type UploadHandler struct {
	service services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload godoc
// POST /api/admin/uploads — multipart/form-data, alan adı "file".
// Başarıda { "url": "/api/uploads/<uuid>.<ext>" } döner.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := h.service.Upload(file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
