// Package storage archives rendered appointment codes in an S3-compatible
// object store (AWS S3, MinIO).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/medapp/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	now = time.Now
)

// S3Archiver uploads QR images to a single bucket.
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver builds an archiver from the S3 settings in cfg.
func NewS3Archiver(ctx context.Context, cfg *sc.Config) (*S3Archiver, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.S3Bucket}, nil
}

// ArchiveKey returns a fresh object key for an appointment's code.
func ArchiveKey(appointmentID int64) string {
	d := now().UTC()
	return fmt.Sprintf("appointments/%04d/%02d/%02d/%d-%v.png", d.Year(), d.Month(), d.Day(), appointmentID, uuid.New())
}

// Archive uploads png under a new key and returns that key.
func (a *S3Archiver) Archive(ctx context.Context, appointmentID int64, png []byte) (string, error) {
	key := ArchiveKey(appointmentID)

	_, err := putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(png),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(png))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return key, nil
}
