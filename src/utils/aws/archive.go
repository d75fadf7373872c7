package aws_handler

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type uploaderAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// ReportArchive stores generated report files in an S3 bucket.
type ReportArchive struct {
	uploader uploaderAPI
	bucket   string
}

func NewReportArchive(uploader uploaderAPI, bucket string) *ReportArchive {
	return &ReportArchive{uploader: uploader, bucket: bucket}
}

// Upload writes data under key and returns the object location.
func (a *ReportArchive) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	out, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return out.Location, nil
}
