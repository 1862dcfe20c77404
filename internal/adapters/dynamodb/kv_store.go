package dynamodb_adapter

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI - часть клиента DynamoDB, которую использует хранилище.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// kvItem - строка таблицы. Ключ партиции - атрибут "key".
type kvItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

type DynamoDBKeyValueStore struct {
	client    DynamoDBAPI
	tableName string
}

func NewDynamoDBKeyValueStore(client DynamoDBAPI, tableName string) (*DynamoDBKeyValueStore, error) {
	if client == nil {
		return nil, fmt.Errorf("DynamoDB client not initialized")
	}
	if tableName == "" {
		return nil, fmt.Errorf("DynamoDB table name is required")
	}
	return &DynamoDBKeyValueStore{client: client, tableName: tableName}, nil
}

func (r *DynamoDBKeyValueStore) Read(ctx context.Context, key string) (string, bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			"key": &dynamodbtypes.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to get item from DynamoDB", err, port.Fields{
			"component": "DynamoDBKeyValueStore",
			"table":     r.tableName,
			"key":       key,
		})
		return "", false, fmt.Errorf("failed to get item '%s': %w", key, err)
	}
	if out.Item == nil {
		return "", false, nil
	}

	var item kvItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal item '%s': %w", key, err)
	}
	return item.Value, true, nil
}

func (r *DynamoDBKeyValueStore) Write(ctx context.Context, key, value string) error {
	av, err := attributevalue.MarshalMap(kvItem{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal item '%s': %w", key, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to put item to DynamoDB", err, port.Fields{
			"component": "DynamoDBKeyValueStore",
			"table":     r.tableName,
			"key":       key,
		})
		return fmt.Errorf("failed to put item '%s': %w", key, err)
	}
	return nil
}
