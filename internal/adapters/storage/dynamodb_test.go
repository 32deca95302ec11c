package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/models"
)

type dynamoDBCall[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// mockDynamoDBClient is an expectation-based fake; every call that has no
// function set fails the test
type mockDynamoDBClient struct {
	ScanFunc     dynamoDBCall[dynamodb.ScanInput, dynamodb.ScanOutput]
	PutFunc      dynamoDBCall[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	GetFunc      dynamoDBCall[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	DeleteFunc   dynamoDBCall[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput]
	DescribeFunc dynamoDBCall[dynamodb.DescribeTableInput, dynamodb.DescribeTableOutput]
	CreateFunc   dynamoDBCall[dynamodb.CreateTableInput, dynamodb.CreateTableOutput]
}

func newMockDynamoDBClient(t *testing.T) *mockDynamoDBClient {
	return &mockDynamoDBClient{
		ScanFunc:     unexpectedCall[dynamodb.ScanInput, dynamodb.ScanOutput](t),
		PutFunc:      unexpectedCall[dynamodb.PutItemInput, dynamodb.PutItemOutput](t),
		GetFunc:      unexpectedCall[dynamodb.GetItemInput, dynamodb.GetItemOutput](t),
		DeleteFunc:   unexpectedCall[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput](t),
		DescribeFunc: unexpectedCall[dynamodb.DescribeTableInput, dynamodb.DescribeTableOutput](t),
		CreateFunc:   unexpectedCall[dynamodb.CreateTableInput, dynamodb.CreateTableOutput](t),
	}
}

func unexpectedCall[T, U any](t *testing.T) dynamoDBCall[T, U] {
	return func(ctx context.Context, params *T, optFns ...func(*dynamodb.Options)) (*U, error) {
		t.Fatal("unexpected call")
		return nil, nil
	}
}

func (m *mockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return m.ScanFunc(ctx, params, optFns...)
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutFunc(ctx, params, optFns...)
}

func (m *mockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetFunc(ctx, params, optFns...)
}

func (m *mockDynamoDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return m.DeleteFunc(ctx, params, optFns...)
}

func (m *mockDynamoDBClient) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return m.DescribeFunc(ctx, params, optFns...)
}

func (m *mockDynamoDBClient) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return m.CreateFunc(ctx, params, optFns...)
}

func newTestDynamoDBTable(client DynamoDBAPI) *DynamoDBTable {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewDynamoDBTable(client, "ServerlessBlog", logger)
}

func stringValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func TestDynamoDBTable_Scan(t *testing.T) {
	client := newMockDynamoDBClient(t)
	calls := 0
	client.ScanFunc = func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
		calls++
		if aws.ToString(params.TableName) != "ServerlessBlog" {
			t.Errorf("Expected table ServerlessBlog, got %s", aws.ToString(params.TableName))
		}

		switch calls {
		case 1:
			if params.ExclusiveStartKey != nil {
				t.Error("First page should not carry a start key")
			}
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{"id": &types.AttributeValueMemberS{Value: "1"}, "title": &types.AttributeValueMemberS{Value: "Hello"}},
				},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "1"}},
			}, nil
		default:
			if stringValue(params.ExclusiveStartKey["id"]) != "1" {
				t.Errorf("Expected second page to start after id 1, got %v", params.ExclusiveStartKey)
			}
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{"id": &types.AttributeValueMemberS{Value: "2"}, "views": &types.AttributeValueMemberN{Value: "7"}},
				},
			}, nil
		}
	}

	records, err := newTestDynamoDBTable(client).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected 2 scan pages, got %d", calls)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["title"] != "Hello" {
		t.Errorf("Expected title Hello, got %v", records[0]["title"])
	}
	if records[1]["views"] != json.Number("7") {
		t.Errorf("Expected views 7, got %v (%T)", records[1]["views"], records[1]["views"])
	}
}

func TestDynamoDBTable_ScanEmpty(t *testing.T) {
	client := newMockDynamoDBClient(t)
	client.ScanFunc = func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
		return &dynamodb.ScanOutput{}, nil
	}

	records, err := newTestDynamoDBTable(client).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", records)
	}
}

func TestDynamoDBTable_Put(t *testing.T) {
	client := newMockDynamoDBClient(t)
	var captured *dynamodb.PutItemInput
	client.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		captured = params
		return &dynamodb.PutItemOutput{}, nil
	}

	record := models.Record{"id": "1", "title": "Hello", "views": json.Number("3"), "big": json.Number("12345678901234567890")}
	if err := newTestDynamoDBTable(client).Put(context.Background(), record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if aws.ToString(captured.TableName) != "ServerlessBlog" {
		t.Errorf("Expected table ServerlessBlog, got %s", aws.ToString(captured.TableName))
	}
	if stringValue(captured.Item["id"]) != "1" {
		t.Errorf("Expected id attribute 1, got %v", captured.Item["id"])
	}
	if stringValue(captured.Item["title"]) != "Hello" {
		t.Errorf("Expected title attribute Hello, got %v", captured.Item["title"])
	}
	if n, ok := captured.Item["views"].(*types.AttributeValueMemberN); !ok || n.Value != "3" {
		t.Errorf("Expected numeric views attribute, got %#v", captured.Item["views"])
	}
	if n, ok := captured.Item["big"].(*types.AttributeValueMemberN); !ok || n.Value != "12345678901234567890" {
		t.Errorf("Expected big number stored with all digits, got %#v", captured.Item["big"])
	}
	if captured.ConditionExpression != nil {
		t.Error("Put must overwrite unconditionally")
	}
}

func TestDynamoDBTable_Get(t *testing.T) {
	tests := []struct {
		name         string
		output       *dynamodb.GetItemOutput
		err          error
		wantNotFound bool
		wantErr      bool
	}{
		{
			name: "found",
			output: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"id":    &types.AttributeValueMemberS{Value: "1"},
				"title": &types.AttributeValueMemberS{Value: "Hello"},
			}},
		},
		{
			name:         "not found",
			output:       &dynamodb.GetItemOutput{},
			wantNotFound: true,
			wantErr:      true,
		},
		{
			name:    "service error",
			err:     &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException", Message: "slow down"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockDynamoDBClient(t)
			client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				if stringValue(params.Key["id"]) != "1" {
					t.Errorf("Expected key id 1, got %v", params.Key)
				}
				return tt.output, tt.err
			}

			record, err := newTestDynamoDBTable(client).Get(context.Background(), "1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Get() error = %v, wantErr %v", err, tt.wantErr)
			}
			if IsNotFound(err) != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", IsNotFound(err), tt.wantNotFound)
			}
			if !tt.wantErr && record["title"] != "Hello" {
				t.Errorf("Expected title Hello, got %v", record["title"])
			}
			if tt.err != nil && ErrorCode(err) != "ProvisionedThroughputExceededException" {
				t.Errorf("Expected error code to survive wrapping, got %q", ErrorCode(err))
			}
		})
	}
}

func TestDynamoDBTable_GetKeepsNumberDigits(t *testing.T) {
	client := newMockDynamoDBClient(t)
	client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"id":  &types.AttributeValueMemberS{Value: "1"},
			"big": &types.AttributeValueMemberN{Value: "12345678901234567890"},
			"meta": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"views": &types.AttributeValueMemberN{Value: "9007199254740993"},
			}},
			"scores": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberN{Value: "0.1"},
			}},
		}}, nil
	}

	record, err := newTestDynamoDBTable(client).Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}
	want := `{"big":12345678901234567890,"id":"1","meta":{"views":9007199254740993},"scores":[0.1]}`
	if string(encoded) != want {
		t.Errorf("Record = %s, want %s", encoded, want)
	}
}

func TestDynamoDBTable_Delete(t *testing.T) {
	client := newMockDynamoDBClient(t)
	client.DeleteFunc = func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
		if stringValue(params.Key["id"]) != "1" {
			t.Errorf("Expected key id 1, got %v", params.Key)
		}
		return &dynamodb.DeleteItemOutput{}, nil
	}

	if err := newTestDynamoDBTable(client).Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestDynamoDBTable_ErrorsCarryContext(t *testing.T) {
	client := newMockDynamoDBClient(t)
	serviceErr := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "Requested resource not found"}
	client.DeleteFunc = func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
		return nil, serviceErr
	}

	err := newTestDynamoDBTable(client).Delete(context.Background(), "42")

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Expected StorageError, got %T", err)
	}
	if storageErr.Op != "Delete" || storageErr.Key != "42" {
		t.Errorf("Unexpected error context: %+v", storageErr)
	}
	if !errors.Is(err, serviceErr) {
		t.Error("Expected the service error to be wrapped")
	}
	if ErrorCode(err) != "ResourceNotFoundException" {
		t.Errorf("Expected ResourceNotFoundException, got %q", ErrorCode(err))
	}
	if ErrorCode(errors.New("plain")) != "" {
		t.Error("Expected empty code for non-API errors")
	}
}

func TestDynamoDBTable_EnsureTableExisting(t *testing.T) {
	client := newMockDynamoDBClient(t)
	client.DescribeFunc = func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
		return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableStatus: types.TableStatusActive}}, nil
	}

	if err := newTestDynamoDBTable(client).EnsureTable(context.Background(), client); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
}

func TestDynamoDBTable_EnsureTableCreates(t *testing.T) {
	client := newMockDynamoDBClient(t)
	created := false
	client.DescribeFunc = func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
		if !created {
			return nil, &types.ResourceNotFoundException{Message: aws.String("no table")}
		}
		return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableStatus: types.TableStatusActive}}, nil
	}
	client.CreateFunc = func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
		created = true
		if len(params.KeySchema) != 1 || aws.ToString(params.KeySchema[0].AttributeName) != "id" {
			t.Errorf("Expected single id hash key, got %+v", params.KeySchema)
		}
		if params.BillingMode != types.BillingModePayPerRequest {
			t.Errorf("Expected on-demand billing, got %s", params.BillingMode)
		}
		return &dynamodb.CreateTableOutput{}, nil
	}

	if err := newTestDynamoDBTable(client).EnsureTable(context.Background(), client); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	if !created {
		t.Error("Expected the table to be created")
	}
}
