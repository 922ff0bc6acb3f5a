// Package publish uploads the tooltip stylesheet to S3 so pages that do not
// run the server can link it from a CDN.
package publish

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// PutObjectAPI is the subset of *s3.Client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures an upload.
type Options struct {
	Bucket string
	Key    string
	Region string

	// Endpoint overrides the S3 endpoint, e.g. for MinIO or LocalStack.
	// Path-style addressing is used when set.
	Endpoint string

	// CacheControl is sent with the object. Default: one hour, public.
	CacheControl string
}

// Result describes a published object.
type Result struct {
	Bucket string
	Key    string
	URL    string
	SHA256 string
	Size   int
}

// Publisher uploads stylesheets.
type Publisher struct {
	client PutObjectAPI
	now    func() time.Time
	logger *slog.Logger
}

// New returns a Publisher using client.
func New(client PutObjectAPI) *Publisher {
	return &Publisher{
		client: client,
		now:    time.Now,
		logger: slog.Default().With("component", "publish"),
	}
}

// NewClient builds an S3 client from opts. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; without
// them requests are sent unsigned.
func NewClient(opts Options) *s3.Client {
	s3opts := s3.Options{
		Region:      opts.Region,
		Credentials: envCredentials(),
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}
	return s3.New(s3opts)
}

func envCredentials() aws.CredentialsProvider {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	token := os.Getenv("AWS_SESSION_TOKEN")
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "Environment",
		}, nil
	})
}

// Stylesheet uploads tooltip.Stylesheet() to opts.Bucket/opts.Key.
func (p *Publisher) Stylesheet(ctx context.Context, opts Options) (*Result, error) {
	return p.Put(ctx, opts, []byte(tooltip.Stylesheet()))
}

// Put uploads css to opts.Bucket/opts.Key.
func (p *Publisher) Put(ctx context.Context, opts Options, css []byte) (*Result, error) {
	if opts.Bucket == "" {
		return nil, errors.New("E300")
	}
	if opts.Key == "" {
		opts.Key = "tooltip.css"
	}
	if opts.CacheControl == "" {
		opts.CacheControl = "public, max-age=3600"
	}

	sum := sha256.Sum256(css)
	digest := hex.EncodeToString(sum[:])

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(opts.Bucket),
		Key:          aws.String(opts.Key),
		Body:         bytes.NewReader(css),
		ContentType:  aws.String("text/css; charset=utf-8"),
		CacheControl: aws.String(opts.CacheControl),
		Metadata: map[string]string{
			"sha256":       digest,
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, errors.New("E301").
			WithDetailf("s3://%s/%s", opts.Bucket, opts.Key).
			Wrap(err)
	}

	res := &Result{
		Bucket: opts.Bucket,
		Key:    opts.Key,
		URL:    objectURL(opts),
		SHA256: digest,
		Size:   len(css),
	}
	p.logger.Info("stylesheet published", "url", res.URL, "bytes", res.Size)
	return res, nil
}

func objectURL(opts Options) string {
	if opts.Endpoint != "" {
		return strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket + "/" + opts.Key
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	return "https://" + opts.Bucket + ".s3." + region + ".amazonaws.com/" + opts.Key
}
