package usecase

import (
	"context"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

// Storage resolves raw image bytes to a stable photo reference. The core never
// keeps the bytes.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (domain.PhotoRef, error)
}

// PhotoUsecase uploads a photo and attaches the resulting reference to the
// open draft.
type PhotoUsecase struct {
	storage Storage
	logger  *logger.Logger
}

func NewPhotoUsecase(storage Storage, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, logger: log.Named("PhotoUsecase")}
}

func (uc *PhotoUsecase) Attach(ctx context.Context, draft *DraftAttachments, fileName string, data []byte) (domain.PhotoRef, error) {
	// Refuse before uploading so a full draft never leaves an orphaned object.
	if draft.Len() >= domain.MaxListingPhotos {
		return "", domain.ErrPhotoLimitExceeded
	}

	ref, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("photo upload failed", "file_name", fileName, "error", err.Error())
		return "", err
	}

	if _, err := draft.Add(ref); err != nil {
		return "", err
	}
	uc.logger.Info("photo attached to draft", "ref", string(ref), "count", draft.Len())
	return ref, nil
}
