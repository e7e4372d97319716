package clients

import (
	"context"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/bookcatalog/config"
)

// NewS3Client configures a new AWS S3 object storage client. Static
// credentials are used when configured; otherwise the default AWS credential
// chain applies. A custom endpoint switches to path-style addressing so
// S3-compatible stores such as MinIO work.
func NewS3Client(cfg config.Config, httpClient *awshttp.BuildableClient) (*s3.Client, error) {
	opts := []func(*s3Config.LoadOptions) error{
		s3Config.WithRegion(cfg.S3.Region),
		s3Config.WithHTTPClient(httpClient),
	}
	if cfg.S3.AccessKeyID != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
		opts = append(opts, s3Config.WithCredentialsProvider(creds))
	}
	awsCfg, err := s3Config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}
