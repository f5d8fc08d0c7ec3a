package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// AllowedImageTypes maps accepted avatar content types to file extensions.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type FileStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewFileStorage connects to MinIO and creates a publicly readable bucket if missing.
func NewFileStorage(endpoint, publicURL, accessKey, secretKey, bucketName string) (*FileStorage, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: strings.HasPrefix(publicURL, "https://"),
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucketName, err)
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucketName)
		if err := minioClient.SetBucketPolicy(ctx, bucketName, policy); err != nil {
			zap.L().Warn("set bucket policy failed", zap.String("bucket", bucketName), zap.Error(err))
		}
		zap.L().Info("bucket created", zap.String("bucket", bucketName))
	}

	return &FileStorage{
		client:    minioClient,
		bucket:    bucketName,
		publicURL: publicURL,
	}, nil
}

// AvatarObjectName returns a unique object key for a user's avatar.
func AvatarObjectName(userID uint, contentType string) string {
	return path.Join("avatars", fmt.Sprintf("%d", userID), uuid.NewString()+AllowedImageTypes[contentType])
}

// UploadAvatar stores the image and returns its public URL.
func (s *FileStorage) UploadAvatar(ctx context.Context, userID uint, size int64, reader io.Reader, contentType string) (string, error) {
	objectName := AvatarObjectName(userID, contentType)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return PublicURL(s.publicURL, s.bucket, objectName), nil
}

// PublicURL joins by hand: path.Join would collapse "http://" to "http:/".
func PublicURL(base, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, objectName)
}
