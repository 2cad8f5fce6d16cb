package aws

import (
	"context"
	"encoding/json"
	"log"
	"plannova/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher fans workflow events out to an SNS topic. The event type travels
// as a message attribute so subscriptions can filter on it.
type SNSPublisher struct {
	TopicArn string
	inner    SNSAPI
}

func NewSNSPublisher(inner SNSAPI, topicArn string) *SNSPublisher {
	return &SNSPublisher{TopicArn: topicArn, inner: inner}
}

func (s *SNSPublisher) Publish(ctx context.Context, evt types.WorkflowEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	output, err := s.inner.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.TopicArn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(evt.Type)),
			},
		},
	})
	if err != nil {
		log.Printf("[SNS] Error publishing %s: %s\n", evt.Type, err.Error())
		return err
	}
	log.Printf("[SNS] Published %s as %s\n", evt.Type, aws.ToString(output.MessageId))
	return nil
}
