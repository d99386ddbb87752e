package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	sc "github.com/dmitrijs2005/letshang/internal/server/config"
	"github.com/google/uuid"
)

const avatarURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AvatarUpload tells the client where to PUT the image and which key to
// save as its avatar reference afterwards.
type AvatarUpload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// AvatarService issues presigned S3 URLs for avatar images. Objects never
// pass through the server.
type AvatarService struct {
	config *sc.Config
	logger logging.Logger
}

func NewAvatarService(cfg *sc.Config, l logging.Logger) *AvatarService {
	return &AvatarService{config: cfg, logger: l.With("module", "avatars")}
}

// AvatarKey places every upload under the owner's prefix.
func AvatarKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%s", url.PathEscape(userID), uuid.NewString())
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a PUT URL for a new avatar object of the given image type.
func (s *AvatarService) PresignUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	contentType = strings.TrimSpace(contentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.ErrorInvalidType
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := AvatarKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(avatarURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	s.logger.Info(ctx, "avatar upload presigned", "user_id", userID, "key", key)
	return &AvatarUpload{Key: key, URL: req.URL, ContentType: contentType}, nil
}

// DownloadURL turns an avatar reference into a time-limited GET URL.
// References that are already absolute URLs are returned unchanged.
func (s *AvatarService) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(avatarURLValidity))
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return req.URL, nil
}
