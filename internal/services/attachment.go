package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"vessel-orders/config"
	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/filestorage"
	"vessel-orders/pkg/utils"
)

type AttachmentServiceInterface interface {
	Upload(ctx context.Context, header *multipart.FileHeader) (*dto.UploadDTO, error)
	Delete(ctx context.Context, url string) error
}

type AttachmentService struct {
	fileStorage filestorage.FileStorageInterface
	engine      *authz.Engine
	identity    *IdentityLoader
	logger      *zap.Logger
}

func NewAttachmentService(
	fileStorage filestorage.FileStorageInterface,
	engine *authz.Engine,
	identity *IdentityLoader,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{fileStorage: fileStorage, engine: engine, identity: identity, logger: logger}
}

func (s *AttachmentService) check(ctx context.Context) (authz.Identity, error) {
	id, err := s.identity.IdentityFor(ctx)
	if err != nil {
		return id, err
	}
	return id, s.engine.CanView(id).Err()
}

func (s *AttachmentService) Upload(ctx context.Context, header *multipart.FileHeader) (*dto.UploadDTO, error) {
	id, err := s.check(ctx)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("could not read uploaded file")
	}
	defer file.Close()

	if err := utils.ValidateFile(header, file, config.OrderAttachmentContext); err != nil {
		return nil, err
	}

	prefix := config.UploadContexts[config.OrderAttachmentContext].PathPrefix
	url, err := s.fileStorage.Save(file, filepath.Base(header.Filename), prefix)
	if err != nil {
		return nil, err
	}
	s.logger.Info("attachment uploaded", zap.String("url", url), zap.String("userID", id.ID), zap.Int64("size", header.Size))
	return &dto.UploadDTO{URL: url}, nil
}

func (s *AttachmentService) Delete(ctx context.Context, url string) error {
	id, err := s.check(ctx)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(url, filestorage.PublicPrefix) {
		return apperrors.NewInvalidInputError("not an uploaded file: %s", url)
	}
	if err := s.fileStorage.Delete(url); err != nil {
		return err
	}
	s.logger.Info("attachment deleted", zap.String("url", url), zap.String("userID", id.ID))
	return nil
}
