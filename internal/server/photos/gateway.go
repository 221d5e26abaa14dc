// Package photos stores employee photos on S3-compatible object storage and
// returns the retrieval reference kept on the employee record.
package photos

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/employeehub/internal/server/config"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/google/uuid"
)

// MaxPhotoBytes bounds both decoded data URIs and downloaded images.
const MaxPhotoBytes = 10 << 20

// ObjectPutter is the subset of *s3.Client used by Gateway.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newObjectName = func() string { return uuid.NewString() }
)

type Gateway struct {
	client     ObjectPutter
	httpClient *http.Client
	bucket     string
	folder     string
	publicBase string
}

func NewGateway(client ObjectPutter, bucket, folder, publicBase string) *Gateway {
	return &Gateway{
		client:     client,
		httpClient: http.DefaultClient,
		bucket:     bucket,
		folder:     folder,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// NewS3Gateway builds a Gateway backed by an S3 client configured from cfg.
// Path-style addressing is used so MinIO and similar hosts work unchanged.
func NewS3Gateway(ctx context.Context, cfg *sc.Config) (*Gateway, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return NewGateway(client, cfg.S3Bucket, cfg.PhotoFolder, cfg.PublicBaseURL()), nil
}

// Upload stores the image given as a data URI or an http(s) URL.
// Failures from the remote host or the object store are returned as they
// came, never retried.
func (g *Gateway) Upload(ctx context.Context, source string) (*models.EmployeePhoto, error) {
	body, contentType, err := g.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	key := path.Join(g.folder, newObjectName()+extensionFor(contentType))

	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return nil, err
	}

	return &models.EmployeePhoto{
		URL:      g.publicBase + "/" + g.bucket + "/" + key,
		PublicID: key,
	}, nil
}
