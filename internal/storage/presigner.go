// Package storage issues presigned S3 upload URLs for event images,
// organization logos and user avatars.
package storage

import (
	"context"
	"errors"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

var (
	ErrUnknownKind          = errors.New("unknown upload kind")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

var kindPrefixes = map[string]string{
	"event":  "events",
	"logo":   "logos",
	"avatar": "avatars",
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

type FilePresigner struct {
	client *s3.PresignClient
	bucket string
}

func NewFilePresigner(ctx context.Context, opts Options) (*FilePresigner, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &FilePresigner{client: s3.NewPresignClient(client), bucket: opts.Bucket}, nil
}

// PresignUpload returns a PUT URL and the object key it writes to.
func (p *FilePresigner) PresignUpload(ctx context.Context, kind, filename string, ownerID uint) (string, string, error) {
	key, err := ObjectKey(kind, filename, ownerID)
	if err != nil {
		return "", "", err
	}

	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = uploadURLTTL
	})
	if err != nil {
		return "", "", err
	}
	return req.URL, key, nil
}

// ObjectKey builds "<prefix>/<owner>/<uuid><ext>"; the client filename only
// contributes its extension.
func ObjectKey(kind, filename string, ownerID uint) (string, error) {
	prefix, ok := kindPrefixes[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedExtension
	}
	return path.Join(prefix, strconv.FormatUint(uint64(ownerID), 10), uuid.NewString()+ext), nil
}
