package lib

import (
	"context"
	"encoding/json"
	"log"
	"plannova/src/config"
	"plannova/src/types"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func GetKafkaProducerConfig(clientId string) kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": config.KAFKA_BROKER,
		"client.id":         clientId,
		"acks":              "all",
	}
}

func GetKafkaConsumerConfig(groupId string) kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": config.KAFKA_BROKER,
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	}
}

// KafkaPublisher writes workflow events to a single topic keyed by aggregate,
// so events for one vendor or payment stay ordered within a partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(clientId, topic string) (*KafkaPublisher, error) {
	cfg := GetKafkaProducerConfig(clientId)
	p, err := kafka.NewProducer(&cfg)
	if err != nil {
		log.Printf("[kafka] Error on producer: %s\n", err.Error())
		return nil, err
	}
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				log.Printf("[kafka] delivery failed: %s\n", m.TopicPartition.Error.Error())
			}
		}
	}()
	return &KafkaPublisher{producer: p, topic: topic}, nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, evt types.WorkflowEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return k.producer.Produce(kafkaMessage(k.topic, evt, value), nil)
}

func (k *KafkaPublisher) Close() {
	k.producer.Flush(5000)
	k.producer.Close()
}

func kafkaMessage(topic string, evt types.WorkflowEvent, value []byte) *kafka.Message {
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(evt.AggregateID),
		Value:          value,
		Headers:        []kafka.Header{{Key: "type", Value: []byte(evt.Type)}},
	}
}

// KafkaConsumer polls topics in the background and hands every message body to
// handler until ctx is cancelled or the broker reports a fatal error.
func KafkaConsumer(ctx context.Context, groupId string, topics []string, handler types.Handler) error {
	log.Println("Initializing kafka Consumer...")
	cfg := GetKafkaConsumerConfig(groupId)
	master, err := kafka.NewConsumer(&cfg)
	if err != nil {
		log.Printf("Error on master: %s\n", err.Error())
		return err
	}
	if err = master.SubscribeTopics(topics, nil); err != nil {
		log.Printf("Error on consumer: %s\n", err.Error())
		master.Close()
		return err
	}
	go func() {
		log.Println("[BACKGROUND]: waiting for messages...")
		defer master.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			switch e := master.Poll(100).(type) {
			case *kafka.Message:
				handler(string(e.Value))
			case kafka.Error:
				log.Printf("[kafka] %% Error: %v\n", e)
				if e.IsFatal() {
					return
				}
			}
		}
	}()
	return nil
}

func KafkaCreateTopics(ctx context.Context, topics ...string) ([]kafka.TopicResult, error) {
	a, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": config.KAFKA_BROKER,
	})
	if err != nil {
		log.Printf("Error on AdminClient: %s\n", err.Error())
		return nil, err
	}
	defer a.Close()
	topicsDef := []kafka.TopicSpecification{}
	for _, topic := range topics {
		topicsDef = append(topicsDef, kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     10,
			ReplicationFactor: 1,
		})
	}
	result, err := a.CreateTopics(ctx, topicsDef)
	if err != nil {
		log.Printf("Error creating topics: %s\n", err.Error())
		return nil, err
	}
	return result, nil
}
