package services

import (
	"bytes"
	"context"
	"log"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/repositories"
	"github.com/Rakhulsr/go-catalog-api/app/storage"
)

// UploadFolder is where product images land inside the file store.
const UploadFolder = "uploads"

// ImageUpload is one raw uploaded image as handed over by the HTTP layer.
type ImageUpload struct {
	Filename string
	Content  []byte
}

// SyncResult reports what a reconciliation actually did. Failed carries
// the original filenames of images whose storage write failed; those are
// skipped, never fatal for the product write.
type SyncResult struct {
	Media  []models.Media
	Failed []string
}

// MediaSyncService keeps a product's media rows and the file store in
// agreement. It is the only writer of media rows.
type MediaSyncService struct {
	files storage.FileStore
	media repositories.MediaRepositoryImpl
}

func NewMediaSyncService(files storage.FileStore, media repositories.MediaRepositoryImpl) *MediaSyncService {
	return &MediaSyncService{files: files, media: media}
}

// Sync reconciles a product's attached images with an incoming set.
//
// images == nil means the request carried no images field at all and the
// existing media is left alone. A non-nil set (including an empty one)
// replaces everything: every old file and row is removed first, then the
// new images are stored in input order. Partial add/remove of single
// images is deliberately not supported.
func (s *MediaSyncService) Sync(ctx context.Context, productID uint, images []ImageUpload) (*SyncResult, error) {
	if images == nil {
		existing, err := s.media.ListFor(ctx, productID)
		if err != nil {
			return nil, err
		}
		return &SyncResult{Media: existing}, nil
	}

	existing, err := s.media.ListFor(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Old media goes first so a mid-way upload failure can never leave a
	// mix of stale and new files behind.
	for _, old := range existing {
		if !s.files.Delete(old.FilePath) {
			log.Printf("MediaSyncService: file %s was already gone", old.FilePath)
		}
		if err := s.media.DeleteRecord(ctx, old.ID); err != nil {
			return nil, err
		}
	}

	result := &SyncResult{}
	for _, image := range images {
		m, err := s.attach(ctx, productID, image)
		if err != nil {
			return nil, err
		}
		if m == nil {
			result.Failed = append(result.Failed, image.Filename)
			continue
		}
		result.Media = append(result.Media, *m)
	}

	return result, nil
}

// Purge removes every media file and row of a product. Used right before
// the product row itself is deleted; no row may survive without its file
// deletion at least having been attempted.
func (s *MediaSyncService) Purge(ctx context.Context, productID uint) error {
	existing, err := s.media.ListFor(ctx, productID)
	if err != nil {
		return err
	}

	for _, m := range existing {
		if !s.files.Delete(m.FilePath) {
			log.Printf("MediaSyncService: file %s was already gone", m.FilePath)
		}
		if err := s.media.DeleteRecord(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// attach stores one image and records it. A storage failure is logged
// and reported as a nil media so the caller can keep going; a database
// failure propagates.
func (s *MediaSyncService) attach(ctx context.Context, productID uint, image ImageUpload) (*models.Media, error) {
	path, err := s.files.Put(bytes.NewReader(image.Content), image.Filename, UploadFolder)
	if err != nil {
		log.Printf("MediaSyncService: image upload failed for %s: %v", image.Filename, err)
		return nil, nil
	}

	media, err := s.media.CreateFor(ctx, productID, path)
	if err != nil {
		// The file is already on disk but its row failed; remove it so
		// the store never holds files no row points at.
		s.files.Delete(path)
		return nil, err
	}
	return media, nil
}
