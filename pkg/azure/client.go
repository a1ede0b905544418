package azure

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/lumber"
)

var (
	defaultBlockSize     int64 = 3 * 1024 * 1024
	defaultConcurrency         = 4
	defaultContainerName       = "coverage"
)

// Store represents the azure storage
type Store struct {
	containerName string
	serviceURL    string
	client        *azblob.Client
	logger        lumber.Logger
}

// NewAzureBlobEnv returns a new Azure blob store.
func NewAzureBlobEnv(cfg *config.AzureConfig, logger lumber.Logger) (core.BlobStore, error) {
	if cfg.StorageAccountName == "" || cfg.StorageAccessKey == "" {
		return nil, errs.Config("either the storage account or storage access key is not set", nil)
	}
	credential, err := azblob.NewSharedKeyCredential(cfg.StorageAccountName, cfg.StorageAccessKey)
	if err != nil {
		return nil, errs.Config("invalid azure storage credentials", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.StorageAccountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, err
	}
	containerName := cfg.ContainerName
	if containerName == "" {
		containerName = defaultContainerName
	}
	return &Store{
		containerName: containerName,
		serviceURL:    serviceURL,
		client:        client,
		logger:        logger,
	}, nil
}

// Create function ulploads blob to URI
func (s *Store) Create(ctx context.Context, path string, reader io.Reader, mimeType string) (string, error) {
	_, err := s.client.UploadStream(ctx, s.containerName, path, reader, &azblob.UploadStreamOptions{
		BlockSize:   defaultBlockSize,
		Concurrency: defaultConcurrency,
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(mimeType)},
	})
	if err != nil {
		s.logger.Errorf("failed to upload blob %s to container %s, error: %v", path, s.containerName, err)
		return "", handleError(err)
	}
	return s.blobURL(path), nil
}

func (s *Store) blobURL(path string) string {
	return fmt.Sprintf("%s%s/%s", s.serviceURL, s.containerName, path)
}

func handleError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return errs.Config("azure container does not exist", err)
	case bloberror.HasCode(err, bloberror.AuthenticationFailed, bloberror.AuthorizationFailure):
		return errs.Config("azure storage rejected the credentials", err)
	}
	return err
}
