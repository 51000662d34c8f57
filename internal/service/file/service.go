package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"golang.org/x/image/draw"
)

const (
	maxPhotoBytes   = 150 * 1024
	maxPhotoWidth   = 1280
	minPhotoQuality = 50
)

type FileService interface {
	// UploadClockPhoto stores the photo taken at clock-in/out as a compressed JPEG
	// and returns its storage key.
	UploadClockPhoto(ctx context.Context, employeeID string, localDate string, file io.Reader, filename string, recordType string) (string, error)

	// OpenFile opens a stored file for streaming
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, key string) error
	GetFileURL(ctx context.Context, key string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// UploadClockPhoto writes time_records/{date}/{employeeID}-{type}-{unix}.jpg
func (s *fileServiceImpl) UploadClockPhoto(ctx context.Context, employeeID string, localDate string, file io.Reader, filename string, recordType string) (string, error) {
	if !validator.IsValidImageFilename(filename) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, maxPhotoBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	newFilename := fmt.Sprintf("%s-%s-%d.jpg", employeeID, recordType, s.now().Unix())
	key := path.Join("time_records", localDate, newFilename)

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload clock photo: %w", err)
	}

	return uploaded, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, key)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, key string) (string, error) {
	return s.storage.GetURL(ctx, key)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes any jpg/png as JPEG no larger than maxSize when possible.
// Quality drops in steps of 5 down to minPhotoQuality, then the image is
// downscaled keeping its aspect ratio.
func compressImage(buffer []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = resizeToWidth(img, maxPhotoWidth)
	}

	var compressed []byte
	for quality := 85; quality >= minPhotoQuality; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large: shrink by the area ratio and accept the result
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	width := int(float64(img.Bounds().Dx()) * ratio)
	if width < 1 {
		width = 1
	}
	return encodeJPEG(resizeToWidth(img, width), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeToWidth scales src to width using CatmullRom, keeping the aspect ratio
func resizeToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := int(math.Round(float64(bounds.Dy()) * float64(width) / float64(bounds.Dx())))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
