package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"journey-map/model"
)

// Thumbnails match the 150x100 popup rendered on the map.
const (
	thumbWidth  = 150
	thumbHeight = 100
)

// PhotoStorage writes uploaded photo blobs and their thumbnails.
type PhotoStorage interface {
	Save(ctx context.Context, name, contentType string, data []byte) (model.StoredPhoto, error)
}

// LocalPhotoStorage keeps blobs on the local filesystem.
type LocalPhotoStorage struct {
	Directory string
	Log       *zap.Logger
}

func (s *LocalPhotoStorage) Save(_ context.Context, name, contentType string, data []byte) (model.StoredPhoto, error) {
	if err := os.MkdirAll(s.Directory, 0o755); err != nil {
		return model.StoredPhoto{}, err
	}

	id := uuid.NewString()
	path := filepath.Join(s.Directory, id+filepath.Ext(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return model.StoredPhoto{}, err
	}

	stored := model.StoredPhoto{
		ID:          id,
		Name:        name,
		Path:        path,
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	thumb, err := renderThumbnail(data)
	if err != nil {
		// A photo we cannot decode still gets stored; it just has no
		// thumbnail in the map popup.
		s.Log.Warn("failed to generate thumbnail", zap.String("photo", name), zap.Error(err))
		return stored, nil
	}

	thumbPath := filepath.Join(s.Directory, id+"_thumb.jpg")
	if err := os.WriteFile(thumbPath, thumb, 0o644); err != nil {
		s.Log.Warn("failed to write thumbnail", zap.String("photo", name), zap.Error(err))
		return stored, nil
	}
	stored.ThumbnailPath = thumbPath

	return stored, nil
}

// renderThumbnail decodes the photo and scales it to the popup size.
func renderThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Thumbnail(img, thumbWidth, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
