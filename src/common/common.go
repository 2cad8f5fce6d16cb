package common

import (
	"context"
	"log"
	"plannova/src/config"
	"plannova/src/lib"
	awslib "plannova/src/lib/aws"
	"plannova/src/utils"
)

const notificationsGroup = "notifications"

// NotificationConsumers starts the mail consumer for workflow events. Locally
// it reads the Kafka topic; elsewhere it reads the SQS queue subscribed to the
// SNS topic.
func NotificationConsumers(ctx context.Context) error {
	handler := NotificationHandler(ctx)
	if config.IsLocal() {
		if config.KAFKA_BROKER == "" {
			log.Println("[notifications] KAFKA_BROKER not set, consumer disabled")
			return nil
		}
		return lib.KafkaConsumer(ctx, notificationsGroup, []string{config.WORKFLOW_TOPIC}, handler)
	}
	if config.AWS_SQS_NOTIFICATIONS_QUEUE == "" {
		log.Println("[notifications] AWS_SQS_NOTIFICATIONS_QUEUE not set, consumer disabled")
		return nil
	}
	client, err := lib.AWSGetSQSClient(ctx)
	if err != nil {
		return err
	}
	awslib.NewSQSConsumer(client, utils.WithSuffix(config.AWS_SQS_NOTIFICATIONS_QUEUE), handler).Listen(ctx)
	return nil
}
