package aws

import (
	"context"
	"log"
	"plannova/src/lib"
	"plannova/src/types"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type SQSConsumer struct {
	Name    string
	handler types.Handler
	client  SQSAPI
}

func NewSQSConsumer(client SQSAPI, queue string, handler types.Handler) *SQSConsumer {
	new := SQSConsumer{
		Name:    queue,
		handler: handler,
		client:  client,
	}
	return &new
}

// Listen long-polls the queue until ctx is done. A message is deleted only
// after its handler returns.
func (s *SQSConsumer) Listen(ctx context.Context) {
	go func() {
		qurl, err := s.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
			QueueName: aws.String(s.Name),
		})
		if err != nil {
			log.Printf("Failed to retrieve queue URL for %s: %s\n", s.Name, err.Error())
			return
		}
		log.Printf("%s: Listening for messages...", s.Name)
		for ctx.Err() == nil {
			if err := s.poll(ctx, qurl.QueueUrl); err != nil {
				log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
				return
			}
		}
	}()
}

func (s *SQSConsumer) poll(ctx context.Context, qurl *string) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            qurl,
		WaitTimeSeconds:     20,
		MaxNumberOfMessages: 10,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	for _, m := range output.Messages {
		s.handle(ctx, qurl, m)
	}
	return nil
}

func (s *SQSConsumer) handle(ctx context.Context, qurl *string, m sqstypes.Message) {
	body := strings.Clone(aws.ToString(m.Body))
	s.handler(body)
	lib.SQSDeleteMessage(ctx, s.client, qurl, &m)
}
