package dynamodb_adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDynamoDB struct {
	mock.Mock
}

func (m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func keyIs(key string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		attr, ok := in.Key["key"].(*dynamodbtypes.AttributeValueMemberS)
		return ok && attr.Value == key && *in.TableName == "estate-kv"
	})
}

func TestDynamoDBKeyValueStore_Read(t *testing.T) {
	ctx := context.Background()
	client := new(MockDynamoDB)
	client.On("GetItem", mock.Anything, keyIs("favourites")).Return(&dynamodb.GetItemOutput{
		Item: map[string]dynamodbtypes.AttributeValue{
			"key":        &dynamodbtypes.AttributeValueMemberS{Value: "favourites"},
			"value":      &dynamodbtypes.AttributeValueMemberS{Value: `[{"id":4}]`},
			"updated_at": &dynamodbtypes.AttributeValueMemberN{Value: "1700000000"},
		},
	}, nil)
	client.On("GetItem", mock.Anything, keyIs("missing")).Return(&dynamodb.GetItemOutput{}, nil)
	client.On("GetItem", mock.Anything, keyIs("broken")).Return(nil, errors.New("throttled"))

	store, err := NewDynamoDBKeyValueStore(client, "estate-kv")
	require.NoError(t, err)

	value, found, err := store.Read(ctx, "favourites")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":4}]`, value)

	_, found, err = store.Read(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = store.Read(ctx, "broken")
	assert.ErrorContains(t, err, "throttled")
}

func TestDynamoDBKeyValueStore_Write(t *testing.T) {
	ctx := context.Background()
	client := new(MockDynamoDB)
	client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		key, _ := in.Item["key"].(*dynamodbtypes.AttributeValueMemberS)
		value, _ := in.Item["value"].(*dynamodbtypes.AttributeValueMemberS)
		_, hasTime := in.Item["updated_at"].(*dynamodbtypes.AttributeValueMemberN)
		return key != nil && key.Value == "favourites" && value != nil && value.Value == "[]" && hasTime
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	store, err := NewDynamoDBKeyValueStore(client, "estate-kv")
	require.NoError(t, err)

	assert.NoError(t, store.Write(ctx, "favourites", "[]"))
	client.AssertExpectations(t)
}

func TestDynamoDBKeyValueStore_WriteError(t *testing.T) {
	client := new(MockDynamoDB)
	client.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("ResourceNotFoundException"))

	store, _ := NewDynamoDBKeyValueStore(client, "estate-kv")

	assert.Error(t, store.Write(context.Background(), "favourites", "[]"))
}

func TestNewDynamoDBKeyValueStore_Validation(t *testing.T) {
	_, err := NewDynamoDBKeyValueStore(nil, "t")
	assert.Error(t, err)
	_, err = NewDynamoDBKeyValueStore(new(MockDynamoDB), "")
	assert.Error(t, err)
}
