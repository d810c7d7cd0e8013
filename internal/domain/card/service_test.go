package card

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sa-pphire/contactcard/internal/database"
	"github.com/Sa-pphire/contactcard/internal/pkg/logger"
)

// stubBlobStore records every Put and can fail at a chosen call index.
type stubBlobStore struct {
	mu     sync.Mutex
	puts   []string // folders, in call order
	urls   []string // returned URLs, successful calls only
	failOn int      // 1-based call index that fails; 0 = never
}

func (s *stubBlobStore) Put(ctx context.Context, folder, name, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, folder)
	if s.failOn == len(s.puts) {
		return "", errors.New("blob store unavailable")
	}
	url := fmt.Sprintf("https://blobs.test/%s/%s", folder, name)
	s.urls = append(s.urls, url)
	return url, nil
}

func setupService(t *testing.T, blobs *stubBlobStore) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Card{}))

	return NewService(NewRepository(db), blobs, logger.NewNop(), 500), db
}

func cardCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&Card{}).Count(&n).Error)
	return n
}

func TestGenerateCompletesCard(t *testing.T) {
	blobs := &stubBlobStore{}
	svc, _ := setupService(t, blobs)

	res, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: "ana"}, []byte("img"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, res.Card)

	assert.Equal(t, "ANA", res.Card.FullName)
	assert.True(t, res.Card.IsComplete())
	assert.Equal(t, []string{"qr_images", "qr_codes"}, blobs.puts)

	require.Len(t, blobs.urls, 2)
	assert.Equal(t, blobs.urls[0], res.Card.ImageURL)
	assert.Equal(t, blobs.urls[1], res.Card.QRCodeURL)
	assert.Equal(t, res.Card.QRCodeURL, res.DownloadURL)
	assert.NotEqual(t, res.Card.ImageURL, res.Card.QRCodeURL)

	require.True(t, len(res.Preview) > 8)
	assert.Equal(t, "\x89PNG", string(res.Preview[:4]))

	got, err := svc.Get(context.Background(), res.Card.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Card.ID, got.ID)
	assert.Equal(t, blobs.urls[1], got.QRCodeURL)
}

func TestGenerateSecondUploadFailureLeavesProvisional(t *testing.T) {
	blobs := &stubBlobStore{failOn: 2}
	svc, db := setupService(t, blobs)

	_, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: "ana"}, []byte("img"), "image/png")
	require.ErrorIs(t, err, ErrUpload)

	// The record survives in the provisional state.
	require.EqualValues(t, 1, cardCount(t, db))
	var stored Card
	require.NoError(t, db.First(&stored).Error)

	got, err := svc.Get(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ImageURL)
	assert.Empty(t, got.QRCodeURL)
	assert.False(t, got.IsComplete())
}

func TestGenerateFirstUploadFailureCreatesNothing(t *testing.T) {
	blobs := &stubBlobStore{failOn: 1}
	svc, db := setupService(t, blobs)

	_, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: "ana"}, []byte("img"), "image/png")
	require.ErrorIs(t, err, ErrUpload)
	assert.EqualValues(t, 0, cardCount(t, db))
}

func TestGenerateWithoutImage(t *testing.T) {
	blobs := &stubBlobStore{}
	svc, db := setupService(t, blobs)

	_, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: "ana"}, nil, "")
	require.ErrorIs(t, err, ErrNoImage)

	// Zero external effects.
	assert.Empty(t, blobs.puts)
	assert.EqualValues(t, 0, cardCount(t, db))
}

func TestGenerateDistinctIdentifiers(t *testing.T) {
	blobs := &stubBlobStore{}
	svc, db := setupService(t, blobs)

	req := GenerateRequest{FullName: "ana", Email: "ana@example.com"}
	first, err := svc.Generate(context.Background(), "https://cards.test", req, []byte("img"), "image/png")
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), "https://cards.test", req, []byte("img"), "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first.Card.ID, second.Card.ID)
	assert.EqualValues(t, 2, cardCount(t, db))
}

func TestFullNameUppercased(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "ana", "ANA"},
		{"mixed case", "aNa Torres", "ANA TORRES"},
		{"already uppercase", "ANA", "ANA"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := &stubBlobStore{}
			svc, _ := setupService(t, blobs)

			res, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: tc.in}, []byte("img"), "image/png")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Card.FullName)

			got, err := svc.Get(context.Background(), res.Card.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.FullName)
		})
	}
}

func TestGetUnknownIdentifier(t *testing.T) {
	svc, _ := setupService(t, &stubBlobStore{})

	_, err := svc.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrCardNotFound)

	_, err = svc.Get(context.Background(), "not-an-identifier")
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestRelinkProvisional(t *testing.T) {
	blobs := &stubBlobStore{failOn: 2}
	svc, db := setupService(t, blobs)

	_, err := svc.Generate(context.Background(), "https://cards.test", GenerateRequest{FullName: "ana"}, []byte("img"), "image/png")
	require.ErrorIs(t, err, ErrUpload)

	blobs.failOn = 0
	repaired, err := svc.RelinkProvisional(context.Background(), "https://cards.test", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	var stored Card
	require.NoError(t, db.First(&stored).Error)
	assert.True(t, stored.IsComplete())

	// Nothing left to repair.
	repaired, err = svc.RelinkProvisional(context.Background(), "https://cards.test", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}
