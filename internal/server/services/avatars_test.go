package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	sc "github.com/dmitrijs2005/letshang/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvatarSvc() *AvatarService {
	return NewAvatarService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "avatars",
	}, logging.Nop{})
}

// stubPresign replaces the AWS seams for the duration of the test.
func stubPresign(t *testing.T) (puts *[]*s3.PutObjectInput, gets *[]*s3.GetObjectInput) {
	t.Helper()

	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNewS3, origNewPre
		presignPutObject, presignGetObject = origPut, origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	puts = &[]*s3.PutObjectInput{}
	gets = &[]*s3.GetObjectInput{}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		*puts = append(*puts, in)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/avatars/" + *in.Key + "?sig=put", Method: "PUT"}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		*gets = append(*gets, in)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/avatars/" + *in.Key + "?sig=get", Method: "GET"}, nil
	}
	return puts, gets
}

func TestPresignUpload(t *testing.T) {
	puts, _ := stubPresign(t)
	svc := newAvatarSvc()

	up, err := svc.PresignUpload(context.Background(), "idp|42", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Key, "avatars/idp%7C42/"), up.Key)
	assert.Contains(t, up.URL, "sig=put")
	assert.Equal(t, "image/png", up.ContentType)

	require.Len(t, *puts, 1)
	assert.Equal(t, "avatars", *(*puts)[0].Bucket)
	assert.Equal(t, "image/png", *(*puts)[0].ContentType)
}

func TestPresignUpload_Rejects(t *testing.T) {
	puts, _ := stubPresign(t)
	svc := newAvatarSvc()

	_, err := svc.PresignUpload(context.Background(), "u1", "application/pdf")
	assert.ErrorIs(t, err, common.ErrorInvalidType)

	_, err = svc.PresignUpload(context.Background(), "", "image/png")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Empty(t, *puts)
}

func TestPresignUpload_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := newAvatarSvc().PresignUpload(context.Background(), "u1", "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no region")
}

func TestPresignUpload_PresignError(t *testing.T) {
	stubPresign(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}

	_, err := newAvatarSvc().PresignUpload(context.Background(), "u1", "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign failed")
}

func TestDownloadURL(t *testing.T) {
	_, gets := stubPresign(t)
	svc := newAvatarSvc()
	ctx := context.Background()

	u, err := svc.DownloadURL(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, u)

	u, err = svc.DownloadURL(ctx, "https://cdn.example/me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/me.png", u)
	assert.Empty(t, *gets)

	u, err = svc.DownloadURL(ctx, "avatars/u1/k")
	require.NoError(t, err)
	assert.Contains(t, u, "avatars/u1/k?sig=get")
	require.Len(t, *gets, 1)
}
