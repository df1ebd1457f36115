package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/psmolich79/healthy-meal/config"
)

// allowed profile picture content types, keyed to the stored extension
var pictureExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ImageService stores profile pictures in S3.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadProfilePicture uploads the image bytes under a fresh key and returns
// the public URL.
func (s *ImageService) UploadProfilePicture(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, ok := pictureExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", ErrValidation, contentType)
	}

	key := path.Join("profile-pictures", uuid.New().String()+ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] Uploaded profile picture to %s", publicURL)

	return publicURL, nil
}
