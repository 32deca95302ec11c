package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/models"
)

// tableActiveTimeout bounds how long EnsureTable waits for a new table
const tableActiveTimeout = 2 * time.Minute

// DynamoDBAPI defines the DynamoDB operations used by DynamoDBTable
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDBAdminAPI defines the table management operations used by EnsureTable
type DynamoDBAdminAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Verify that the real DynamoDB client implements both interfaces
var (
	_ DynamoDBAPI      = (*dynamodb.Client)(nil)
	_ DynamoDBAdminAPI = (*dynamodb.Client)(nil)
)

// DynamoDBTable implements Table on top of a DynamoDB table whose hash key
// is the string attribute "id"
type DynamoDBTable struct {
	client    DynamoDBAPI
	tableName string
	logger    *logrus.Logger
}

// NewDynamoDBTable creates a table backed by the given client
func NewDynamoDBTable(client DynamoDBAPI, tableName string, logger *logrus.Logger) *DynamoDBTable {
	if logger == nil {
		logger = logrus.New()
	}
	return &DynamoDBTable{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// NewDynamoDBClient builds a DynamoDB client from the default AWS credential
// chain for the configured region. A non-empty endpoint points the client at
// DynamoDB Local or another compatible service.
func NewDynamoDBClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// TableName returns the name of the underlying DynamoDB table
func (d *DynamoDBTable) TableName() string {
	return d.tableName
}

// Scan implements Table.Scan. It follows LastEvaluatedKey until the whole
// table has been read.
func (d *DynamoDBTable) Scan(ctx context.Context) ([]models.Record, error) {
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.tableName),
	})

	records := make([]models.Record, 0)
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, NewStorageError("Scan", "", err)
		}
		pages++

		for _, item := range page.Items {
			record, err := decodeItem(item)
			if err != nil {
				return nil, NewStorageError("Scan", "", err)
			}
			records = append(records, record)
		}
	}

	d.logger.WithFields(logrus.Fields{
		"table": d.tableName,
		"pages": pages,
		"count": len(records),
	}).Debug("Scanned table")

	return records, nil
}

// Put implements Table.Put. The record is written as-is; a record without
// an id is rejected by DynamoDB. json.Number values are stored as numbers
// with all their digits.
func (d *DynamoDBTable) Put(ctx context.Context, record models.Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return NewStorageError("Put", record.ID(), fmt.Errorf("failed to marshal item: %w", err))
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return NewStorageError("Put", record.ID(), err)
	}

	return nil
}

// Get implements Table.Get
func (d *DynamoDBTable) Get(ctx context.Context, id string) (models.Record, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       d.key(id),
	})
	if err != nil {
		return nil, NewStorageError("Get", id, err)
	}

	if len(out.Item) == 0 {
		return nil, NewStorageError("Get", id, ErrItemNotFound)
	}

	record, err := decodeItem(out.Item)
	if err != nil {
		return nil, NewStorageError("Get", id, err)
	}

	return record, nil
}

// Delete implements Table.Delete
func (d *DynamoDBTable) Delete(ctx context.Context, id string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key:       d.key(id),
	})
	if err != nil {
		return NewStorageError("Delete", id, err)
	}

	return nil
}

// Close implements Table.Close. The SDK client holds no resources that
// need releasing.
func (d *DynamoDBTable) Close() error {
	return nil
}

// EnsureTable creates the table with an "id" hash key and on-demand billing
// when it does not exist yet, then waits for it to become active
func (d *DynamoDBTable) EnsureTable(ctx context.Context, admin DynamoDBAdminAPI) error {
	_, err := admin.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.tableName),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return NewStorageError("DescribeTable", "", err)
	}

	d.logger.WithField("table", d.tableName).Info("Creating table")

	_, err = admin.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(models.KeyAttribute),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(models.KeyAttribute),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return NewStorageError("CreateTable", "", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(admin)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.tableName)}, tableActiveTimeout); err != nil {
		return NewStorageError("CreateTable", "", fmt.Errorf("table did not become active: %w", err))
	}

	return nil
}

// decodeItem converts an item into a record, reading numbers as json.Number
func decodeItem(item map[string]types.AttributeValue) (models.Record, error) {
	var m map[string]interface{}
	err := attributevalue.UnmarshalMapWithOptions(item, &m, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return models.Record(fromItemValue(m).(map[string]interface{})), nil
}

func (d *DynamoDBTable) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		models.KeyAttribute: &types.AttributeValueMemberS{Value: id},
	}
}
