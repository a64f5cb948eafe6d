package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"fadeu/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrAudioDisabled は音声配信が設定されていないことを表します。
var ErrAudioDisabled = errors.New("audio is not configured")

//go:generate mockery --name AudioLinker --output ./mocks --outpkg mocks --case=underscore
type AudioLinker interface {
	// URL は音声ファイル名から再生用URLを返します。
	URL(ctx context.Context, filename string) (string, error)
}

// NewAudioLinker は設定に応じて S3 署名付きURL、固定URL、無効のいずれかを返します。
func NewAudioLinker(ctx context.Context, cfg *config.AudioConfig) (AudioLinker, error) {
	switch {
	case cfg.Bucket != "":
		return newS3AudioLinker(ctx, cfg)
	case cfg.BaseURL != "":
		return &StaticAudioLinker{baseURL: strings.TrimRight(cfg.BaseURL, "/")}, nil
	default:
		return DisabledAudioLinker{}, nil
	}
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3AudioLinker は期限付きの GET URL を発行します。
type S3AudioLinker struct {
	presigner objectPresigner
	bucket    string
	prefix    string
	ttl       time.Duration
}

func newS3AudioLinker(ctx context.Context, cfg *config.AudioConfig) (*S3AudioLinker, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config for audio: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// MinIO などの互換ストレージ
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3AudioLinker{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		ttl:       cfg.URLTTL,
	}, nil
}

func (l *S3AudioLinker) URL(ctx context.Context, filename string) (string, error) {
	key := path.Join(l.prefix, filename)
	req, err := l.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(l.ttl))
	if err != nil {
		return "", fmt.Errorf("presign audio %s: %w", key, err)
	}
	return req.URL, nil
}

type StaticAudioLinker struct {
	baseURL string
}

func (l *StaticAudioLinker) URL(_ context.Context, filename string) (string, error) {
	return l.baseURL + "/" + url.PathEscape(filename), nil
}

// DisabledAudioLinker は音声未設定の環境用です。
type DisabledAudioLinker struct{}

func (DisabledAudioLinker) URL(context.Context, string) (string, error) {
	return "", ErrAudioDisabled
}
