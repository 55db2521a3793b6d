package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"path"

	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// allowed proof-of-payment content types
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

const maxProofSize = 5 << 20 // 5 MiB

type ObjectStorage struct {
	svc    *s3.S3
	bucket string
	logger *logging.Logger
}

func NewObjectStorage(config *utils.Config, logger *logging.Logger) (*ObjectStorage, error) {
	if config.ProofBucket == "" {
		return nil, fmt.Errorf("proof bucket must be configured")
	}

	// Create Session and assign AccessKeyID and SecretAccessKey
	sess, err := session.NewSession(
		&aws.Config{
			Region:      aws.String(config.AWSRegion),
			Credentials: credentials.NewStaticCredentials(config.AWSAccessKeyID, config.AWSSecretAccessKey, ""),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create AWS session: %w", err)
	}

	return &ObjectStorage{
		svc:    s3.New(sess),
		bucket: config.ProofBucket,
		logger: logger,
	}, nil
}

// UploadProof validates and stores a proof-of-payment file, returning its
// public URL.
func (o *ObjectStorage) UploadProof(key string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("proof file is empty")
	}
	if len(data) > maxProofSize {
		return "", fmt.Errorf("proof file exceeds the %dMB limit", maxProofSize>>20)
	}

	contentType := http.DetectContentType(data)
	if !allowedContentTypes[contentType] {
		return "", fmt.Errorf("unsupported proof file type: %s", contentType)
	}

	_, err := o.svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		o.logger.Error(fmt.Sprintf("failed to upload proof %s: %v", key, err))
		return "", fmt.Errorf("unable to store proof of payment: %w", err)
	}

	return o.PublicURL(key), nil
}

func (o *ObjectStorage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", o.bucket, path.Clean(key))
}
