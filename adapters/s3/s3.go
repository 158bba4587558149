// Package s3 stores listing images in an S3-compatible bucket and hands back
// the public URL kept on the Listing record.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Operator struct {
	Client *s3.Client
	Bucket string
	// PublicEndpoint is the base URL under which uploaded objects are served.
	PublicEndpoint *url.URL
}

func NewOperator(client *s3.Client, bucket, publicBaseURL string) (*Operator, error) {
	const op = "NewOperator"
	publicEndpoint, err := url.Parse(publicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to parse public base URL, err=%w", op, err)
	}
	return &Operator{Client: client, Bucket: bucket, PublicEndpoint: publicEndpoint}, nil
}

// Upload writes content under key and returns the object's public URL.
func (o *Operator) Upload(ctx context.Context, key, contentType string, content []byte) (string, error) {
	const op = "Upload"
	_, err := o.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("[%s] Fail to upload object, err=%w", op, err)
	}
	uri := *o.PublicEndpoint
	uri.Path = key
	return uri.String(), nil
}
