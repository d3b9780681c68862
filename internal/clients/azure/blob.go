package azure

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

type BlobConfig struct {
	AccountURL string
	Container  string
}

type BlobService interface {
	Upload(ctx context.Context, key string, file io.Reader, contentType string) error
}

type blobService struct {
	log       *logger.Logger
	client    *azblob.Client
	container string
}

func NewBlobService(log *logger.Logger, cred azcore.TokenCredential, cfg BlobConfig) (BlobService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.AccountURL) == "" {
		return nil, fmt.Errorf("missing storage account URL")
	}
	if strings.TrimSpace(cfg.Container) == "" {
		return nil, fmt.Errorf("missing storage container name")
	}
	client, err := azblob.NewClient(cfg.AccountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &blobService{
		log:       log.With("client", "BlobService"),
		client:    client,
		container: cfg.Container,
	}, nil
}

func (bs *blobService) Upload(ctx context.Context, key string, file io.Reader, contentType string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("blob key required")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	opts := &azblob.UploadStreamOptions{}
	if ct := strings.TrimSpace(contentType); ct != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &ct}
	}
	if _, err := bs.client.UploadStream(ctx, bs.container, key, file, opts); err != nil {
		return fmt.Errorf("upload blob %q to container %q: %w", key, bs.container, err)
	}
	bs.log.Debug("blob uploaded", "container", bs.container, "key", key)
	return nil
}
