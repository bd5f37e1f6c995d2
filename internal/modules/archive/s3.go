package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/bankbot/core/internal/config"
)

func newS3Client(opts appcfg.S3Options) (*awss3.Client, error) {
	if !opts.Enabled() {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: awscreds.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
	}

	return awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		endpoint := strings.TrimSpace(opts.Endpoint)
		if endpoint != "" {
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		}
		// Custom endpoints are S3-compatible stores that usually expect
		// path-style addressing.
		o.UsePathStyle = opts.PathStyleAccess || endpoint != ""
	}), nil
}

func uploadArchive(ctx context.Context, client *awss3.Client, bucket, key string, payload []byte) error {
	_, err := client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String("application/zip"),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return fmt.Errorf("s3 upload of %s: %w", key, err)
	}
	return nil
}
