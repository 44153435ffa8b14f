package service

import (
	"context"

	"travelnest_backend/internal/catalog/transport"
	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/storage"
)

const msgStorageDisabled = "Image uploads are not configured"

// ImageStore issues presigned uploads for catalog images.
type ImageStore interface {
	PresignUpload(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (*storage.PresignedUpload, error)
	MaxFileSize() int64
}

// PresignUpload returns a URL the admin UI can PUT an image to, and the
// public URL to store on the package, destination or post afterwards.
func (s *Service) PresignUpload(ctx context.Context, req transport.PresignUploadRequest) (transport.PresignUploadResponse, error) {
	if s.images == nil {
		return transport.PresignUploadResponse{}, apperr.BadRequest(msgStorageDisabled)
	}
	if err := storage.ValidateImage(req.ContentType, req.SizeBytes, s.images.MaxFileSize()); err != nil {
		return transport.PresignUploadResponse{}, apperr.Validation(err.Error())
	}

	upload, err := s.images.PresignUpload(ctx, req.Folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignUploadResponse{}, apperr.Wrap(apperr.KindInternal, "presign upload", err)
	}

	s.log.Info("image upload presigned", "key", upload.FileKey)
	return transport.PresignUploadResponse{
		UploadURL: upload.URL,
		FileKey:   upload.FileKey,
		PublicURL: upload.PublicURL,
		ExpiresAt: upload.ExpiresAt,
	}, nil
}
