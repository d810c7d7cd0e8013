package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sa-pphire/contactcard/internal/pkg/logger"
	"github.com/Sa-pphire/contactcard/internal/qrimg"
	"github.com/Sa-pphire/contactcard/internal/storage"
)

// Blob store partitions, matching the folders the stored objects end
// up under.
const (
	imageFolder = "qr_images"
	codeFolder  = "qr_codes"
)

const defaultCodeSize = 500

// Service owns the two-phase persistence and linkage pipeline. Phase
// one stores the profile image and creates a provisional card; phase
// two derives the viewer URL from the new identifier, renders and
// stores the QR code image and patches the card with its URL. A
// failure after phase one leaves the card provisional; nothing is
// rolled back.
type Service struct {
	repo     Repository
	blobs    storage.BlobStore
	log      *logger.Logger
	codeSize int
}

func NewService(repo Repository, blobs storage.BlobStore, log *logger.Logger, codeSize int) *Service {
	if codeSize <= 0 {
		codeSize = defaultCodeSize
	}
	return &Service{repo: repo, blobs: blobs, log: log, codeSize: codeSize}
}

// Generate runs the full pipeline for one submission. baseURL is the
// scheme://host prefix the viewer link is built from. image must be
// non-empty; its content type decides the stored object's extension.
func (s *Service) Generate(ctx context.Context, baseURL string, req GenerateRequest, image []byte, contentType string) (*GenerateResult, error) {
	if len(image) == 0 {
		return nil, ErrNoImage
	}

	imageURL, err := s.storeBlob(ctx, imageFolder, contentType, image)
	if err != nil {
		return nil, fmt.Errorf("%w: profile image: %v", ErrUpload, err)
	}

	c := req.toCard()
	c.ImageURL = imageURL
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: create: %v", ErrPersistence, err)
	}

	preview, err := s.link(ctx, baseURL, c)
	if err != nil {
		s.log.Warn("card left provisional", "card_id", c.ID, "error", err)
		return nil, err
	}

	return &GenerateResult{Card: c, Preview: preview, DownloadURL: c.QRCodeURL}, nil
}

// Get returns the card for an identifier, in either state. Callers
// must handle an empty QRCodeURL on provisional cards.
func (s *Service) Get(ctx context.Context, id string) (*Card, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get: %v", ErrPersistence, err)
	}
	return c, nil
}

// RelinkProvisional re-runs the linkage phase for cards whose code
// image was never stored. It is a repair hook; nothing schedules it.
// Returns how many cards were completed.
func (s *Service) RelinkProvisional(ctx context.Context, baseURL string, limit int) (int, error) {
	cards, err := s.repo.ListProvisional(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: list provisional: %v", ErrPersistence, err)
	}

	repaired := 0
	for _, c := range cards {
		if _, err := s.link(ctx, baseURL, c); err != nil {
			s.log.Warn("relink failed", "card_id", c.ID, "error", err)
			continue
		}
		repaired++
	}
	return repaired, nil
}

// link renders, stores and attaches the code image for an existing
// card. On success c.QRCodeURL is set and the raw rendered image is
// returned for inline preview.
func (s *Service) link(ctx context.Context, baseURL string, c *Card) ([]byte, error) {
	viewerURL := baseURL + "/view/" + c.ID

	raw, err := qrimg.Render(viewerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: render: %v", ErrEncode, err)
	}

	resized, err := qrimg.ResizePNG(raw, s.codeSize)
	if err != nil {
		return nil, fmt.Errorf("%w: resize: %v", ErrEncode, err)
	}

	codeURL, err := s.storeBlob(ctx, codeFolder, "image/png", resized)
	if err != nil {
		return nil, fmt.Errorf("%w: code image: %v", ErrUpload, err)
	}

	if err := s.repo.SetQRCodeURL(ctx, c.ID, codeURL); err != nil {
		return nil, fmt.Errorf("%w: attach code url: %v", ErrPersistence, err)
	}
	c.QRCodeURL = codeURL

	return raw, nil
}

func (s *Service) storeBlob(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	name := uuid.NewString() + extForContentType(contentType)
	url, err := s.blobs.Put(ctx, folder, name, contentType, data)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", errors.New("blob store returned no url")
	}
	return url, nil
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
