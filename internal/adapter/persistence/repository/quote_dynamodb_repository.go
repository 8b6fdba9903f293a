package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"clearpoint_av/internal/domain/entities"
	"clearpoint_av/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesUserIDIndex      = "user_id-index"
)

// quoteItem stores the aggregate as a single JSON document plus the scalar
// attributes used by keys and indexes. Options, labor, change log and totals
// caches always travel together, so a document read/write per operation is
// the natural unit.
type quoteItem struct {
	ID          string `dynamodbav:"id"`
	UserID      string `dynamodbav:"user_id"`
	QuoteNumber string `dynamodbav:"quote_number"`
	Status      string `dynamodbav:"status"`
	Document    string `dynamodbav:"document"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it, err := toQuoteItem(q)
	if err != nil {
		return entities.Quote{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		q, err := fromQuoteItem(it)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Update replaces the whole document. The quote must already exist.
func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it, err := toQuoteItem(q)
	if err != nil {
		return entities.Quote{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func toQuoteItem(q entities.Quote) (quoteItem, error) {
	doc, err := json.Marshal(q)
	if err != nil {
		return quoteItem{}, err
	}
	return quoteItem{
		ID:          q.ID,
		UserID:      q.UserID,
		QuoteNumber: q.QuoteNumber,
		Status:      string(q.Status),
		Document:    string(doc),
		UpdatedAt:   q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	var q entities.Quote
	if err := json.Unmarshal([]byte(it.Document), &q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}
