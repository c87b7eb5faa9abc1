package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"herdcore/internal/blob"
	"herdcore/pkg/domain"
)

// photoKey builds the object key for an animal photo. Filenames are
// flattened to their base name so keys stay under the animal's prefix.
func photoKey(animalID, filename string) string {
	return fmt.Sprintf("animals/%s/%s", animalID, path.Base(filename))
}

// AttachPhoto stores an image for the animal in the configured blob store
// and records a ledger event carrying the photo URL. Only the URL is kept
// on the animal side; the bytes live in the blob backend.
func (s *Service) AttachPhoto(ctx context.Context, animalID, filename string, r io.Reader, contentType, recordedBy string) (blob.Info, Result, error) {
	if s.photos == nil {
		return blob.Info{}, Result{}, fmt.Errorf("no photo store configured")
	}
	if strings.TrimSpace(filename) == "" {
		return blob.Info{}, Result{}, fmt.Errorf("filename is required")
	}
	if _, ok := s.store.GetAnimal(animalID); !ok {
		return blob.Info{}, Result{}, ErrNotFound{Entity: domain.EntityAnimal, ID: animalID}
	}
	key := photoKey(animalID, filename)
	info, err := s.photos.Put(ctx, key, r, blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"animal_id": animalID},
	})
	if err != nil {
		return blob.Info{}, Result{}, err
	}
	if info.URL == "" {
		if url, err := s.photos.PresignURL(ctx, key, blob.SignedURLOptions{}); err == nil {
			info.URL = url
		}
	}
	now := s.nowFn()
	res, err := s.runWrite(ctx, "attach_photo", func() string { return animalID }, func(tx Transaction) error {
		_, err := tx.UpdateAnimal(animalID, func(a *Animal) error {
			ev := generalEvent("", fmt.Sprintf("Photo attached: %s", path.Base(filename)), info.URL, recordedBy)
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	if err != nil {
		// The ledger write failed; drop the orphaned object.
		_, _ = s.photos.Delete(ctx, key)
		return blob.Info{}, res, err
	}
	return info, res, nil
}

// ListPhotos returns metadata for all photos stored for the animal.
func (s *Service) ListPhotos(ctx context.Context, animalID string) ([]blob.Info, error) {
	if s.photos == nil {
		return nil, fmt.Errorf("no photo store configured")
	}
	return s.photos.List(ctx, fmt.Sprintf("animals/%s/", animalID))
}
