package aws_handler

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type AWSHandler struct {
	SecretManager *SecretManager
	Archive       *ReportArchive
}

// NewAWSHandler opens one session for region. The archive is only created
// when bucket is set.
func NewAWSHandler(region, bucket string) (*AWSHandler, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	if err != nil {
		return nil, err
	}

	handler := &AWSHandler{
		SecretManager: NewSecretManager(secretsmanager.New(sess)),
	}
	if bucket != "" {
		handler.Archive = NewReportArchive(s3manager.NewUploader(sess), bucket)
	}
	return handler, nil
}
