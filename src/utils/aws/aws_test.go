package aws_handler_test

import (
	"context"
	"errors"
	"io"
	aws_handler "reports/src/utils/aws"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	value *string
	err   error
	asked string
}

func (f *fakeSecrets) GetSecretValueWithContext(_ aws.Context, input *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.StringValue(input.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

type fakeUploader struct {
	input *s3manager.UploadInput
	body  []byte
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	return &s3manager.UploadOutput{Location: "s3://" + aws.StringValue(input.Bucket) + "/" + aws.StringValue(input.Key)}, nil
}

func TestSecretManager(t *testing.T) {
	svc := &fakeSecrets{value: aws.String("s3cret")}
	value, err := aws_handler.NewSecretManager(svc).GetSecretValue(context.Background(), "reports/jwt")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
	assert.Equal(t, "reports/jwt", svc.asked)

	_, err = aws_handler.NewSecretManager(&fakeSecrets{}).GetSecretValue(context.Background(), "empty")
	assert.Error(t, err)

	_, err = aws_handler.NewSecretManager(&fakeSecrets{err: errors.New("denied")}).GetSecretValue(context.Background(), "x")
	assert.EqualError(t, err, "denied")
}

func TestReportArchiveUpload(t *testing.T) {
	uploader := &fakeUploader{}
	archive := aws_handler.NewReportArchive(uploader, "report-bucket")

	location, err := archive.Upload(context.Background(), "reports/sales/2026-10-17.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "s3://report-bucket/reports/sales/2026-10-17.pdf", location)
	assert.Equal(t, "application/pdf", aws.StringValue(uploader.input.ContentType))
	assert.Equal(t, []byte("%PDF"), uploader.body)
}
