package card

import (
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sa-pphire/contactcard/internal/pkg/response"
	"github.com/Sa-pphire/contactcard/internal/qrimg"
)

// Handler serves the card pages: the submission form, the generation
// endpoint and the landing page a scanned code resolves to.
type Handler struct {
	service       *Service
	publicBaseURL string // optional; overrides request-derived links
}

func NewHandler(service *Service, publicBaseURL string) *Handler {
	return &Handler{service: service, publicBaseURL: publicBaseURL}
}

// Index godoc
// @Summary Submission form page
// @Tags Cards
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Generate godoc
// @Summary Create a contact card and its QR code
// @Description Accepts profile fields plus an image file, stores both and returns a page with an inline QR preview and a download link.
// @Tags Cards
// @Accept multipart/form-data
// @Produce html
// @Param image formData file true "Profile image"
// @Success 200 {string} string
// @Failure 400,500 {object} map[string]interface{}
// @Router /generate [post]
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid form data")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_IMAGE", ErrNoImage.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_IMAGE", ErrNoImage.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GENERATE_FAILED", "error processing the request")
		return
	}

	contentType := http.DetectContentType(firstBytes(data, 512))

	result, err := h.service.Generate(c.Request.Context(), h.baseURL(c), req, data, contentType)
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			response.Error(c, http.StatusBadRequest, "NO_IMAGE", ErrNoImage.Error())
			return
		}
		// Upload, persistence and encoding failures are all opaque to
		// the caller.
		response.Error(c, http.StatusInternalServerError, "GENERATE_FAILED", "error processing the request")
		return
	}

	// Both values are produced by this service, never by the client;
	// template.URL keeps html/template from rejecting the data: scheme.
	c.HTML(http.StatusOK, "index.html", gin.H{
		"QRImage":    template.URL(qrimg.DataURL(result.Preview)),
		"QRDownload": template.URL(result.DownloadURL),
	})
}

// View godoc
// @Summary Landing page for a scanned QR code
// @Tags Cards
// @Produce html
// @Param id path string true "Card ID"
// @Success 200 {string} string
// @Failure 404,500 {string} string
// @Router /view/{id} [get]
func (h *Handler) View(c *gin.Context) {
	card, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			c.String(http.StatusNotFound, "Page not found.")
			return
		}
		c.String(http.StatusInternalServerError, "Error loading the page.")
		return
	}

	c.HTML(http.StatusOK, "landing.html", gin.H{"Card": card})
}

// baseURL resolves the scheme://host prefix viewer links are built
// from: the configured public base URL when set, otherwise the
// incoming request (proxy-aware).
func (h *Handler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}
