package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/datavibes/eventapi/internal/chunk"
)

// maxBatchSize is the DynamoDB BatchWriteItem limit.
const maxBatchSize = 25

// API is the subset of the DynamoDB client used by the Store. It exists so
// tests can inject a fake table.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Store provides generic CRUD and query primitives over the single table.
type Store struct {
	client API
	config Config
}

// New creates a new Store instance.
func New(client API, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Table returns the configured table name.
func (s *Store) Table() string {
	return s.config.Table
}

// Key addresses one item in the table.
type Key struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

func (k Key) attributes() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: k.PK},
		AttrSK: &types.AttributeValueMemberS{Value: k.SK},
	}
}

// QueryOptions narrows and orders a partition query.
type QueryOptions struct {
	// SortKeyPrefix selects items whose sort key begins with the prefix.
	SortKeyPrefix string

	// SortKeyEquals selects the single sort key value. Ignored when
	// SortKeyPrefix is set.
	SortKeyEquals string

	// IndexName queries the named secondary index instead of the table;
	// the partition key value is then matched against GSI1PK.
	IndexName string

	// Limit caps the number of items returned (0 = no limit).
	Limit int32

	// ScanForward orders by sort key ascending (default) or descending.
	ScanForward *bool
}

// Get performs a point lookup, returning ErrNotFound when the item is absent.
func Get[T any](ctx context.Context, s *Store, pk, sk string) (*T, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.Table),
		Key:       Key{PK: pk, SK: sk}.attributes(),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var out T
	if err := attributevalue.UnmarshalMap(result.Item, &out); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &out, nil
}

// Put unconditionally upserts a fully-formed item. The item must carry its
// own PK and SK attributes; any existing item at that key is overwritten
// with no merge.
func Put[T any](ctx context.Context, s *Store, item T) error {
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	if !hasStringAttr(attrs, AttrPK) || !hasStringAttr(attrs, AttrSK) {
		return ErrMissingKey
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.Table),
		Item:      attrs,
	})
	return err
}

// Update merges only the named top-level fields into the existing item,
// leaving all other fields untouched. Field names are aliased in the update
// expression so reserved words cannot break the statement. The store does
// not check that the target exists; callers are expected to have done so.
func (s *Store) Update(ctx context.Context, pk, sk string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	// Sort field names so the generated expression is deterministic.
	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var setClauses []string
	exprNames := make(map[string]string, len(fields))
	exprValues := make(map[string]types.AttributeValue, len(fields))

	for i, field := range fields {
		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return fmt.Errorf("marshal field %q: %w", field, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = field
		exprValues[valueKey] = av
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.Table),
		Key:                       Key{PK: pk, SK: sk}.attributes(),
		UpdateExpression:          aws.String("SET " + joinStrings(setClauses, ", ")),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	return err
}

// Delete removes the item at the given key. Deleting a non-existent key is
// not an error.
func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.Table),
		Key:       Key{PK: pk, SK: sk}.attributes(),
	})
	return err
}

// Query returns all items sharing a partition key, optionally narrowed by
// sort-key prefix or exact value, ordered by sort key. With IndexName set
// the partition value is matched against the secondary index instead.
func Query[T any](ctx context.Context, s *Store, pkValue string, opts QueryOptions) ([]T, error) {
	keyExpr := AttrPK + " = :pk"
	if opts.IndexName != "" {
		keyExpr = AttrGSI1PK + " = :pk"
	}

	exprValues := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: pkValue},
	}

	if opts.SortKeyPrefix != "" {
		keyExpr += " AND begins_with(" + AttrSK + ", :skPrefix)"
		exprValues[":skPrefix"] = &types.AttributeValueMemberS{Value: opts.SortKeyPrefix}
	} else if opts.SortKeyEquals != "" {
		keyExpr += " AND " + AttrSK + " = :sk"
		exprValues[":sk"] = &types.AttributeValueMemberS{Value: opts.SortKeyEquals}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.config.Table),
		KeyConditionExpression:    aws.String(keyExpr),
		ExpressionAttributeValues: exprValues,
		ScanIndexForward:          opts.ScanForward,
	}
	if opts.IndexName != "" {
		input.IndexName = aws.String(opts.IndexName)
	}

	// A capped query is a single request; otherwise drain all pages.
	var raw []map[string]types.AttributeValue
	if opts.Limit > 0 {
		input.Limit = aws.Int32(opts.Limit)
		page, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		raw = page.Items
	} else {
		paginator := dynamodb.NewQueryPaginator(s.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	}

	items := make([]T, 0, len(raw))
	for _, attrs := range raw {
		var item T
		if err := attributevalue.UnmarshalMap(attrs, &item); err != nil {
			return nil, fmt.Errorf("unmarshal item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ScanRoots returns every root item of the given entity type, i.e. items
// whose sort key is the METADATA sentinel and whose partition key carries
// the type prefix. This is the only cross-partition read in the system.
func ScanRoots[T any](ctx context.Context, s *Store, entityType string) ([]T, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.config.Table),
		FilterExpression: aws.String(AttrSK + " = :metadata AND begins_with(" + AttrPK + ", :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":metadata": &types.AttributeValueMemberS{Value: TypeMetadata},
			":prefix":   &types.AttributeValueMemberS{Value: Prefix(entityType)},
		},
	}

	var items []T
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, attrs := range page.Items {
			var item T
			if err := attributevalue.UnmarshalMap(attrs, &item); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// BatchDelete removes the given keys in bulk requests of at most 25 items.
// There is no atomicity across chunks: a failure partway through leaves
// earlier chunks deleted and later ones untouched.
func (s *Store) BatchDelete(ctx context.Context, keys []Key) error {
	for _, batch := range chunk.Split(keys, maxBatchSize) {
		requests := make([]types.WriteRequest, 0, len(batch))
		for _, key := range batch {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key.attributes()},
			})
		}

		_, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.config.Table: requests,
			},
		})
		if err != nil {
			return fmt.Errorf("batch delete: %w", err)
		}
	}
	return nil
}

func hasStringAttr(attrs map[string]types.AttributeValue, name string) bool {
	v, ok := attrs[name].(*types.AttributeValueMemberS)
	return ok && v.Value != ""
}

// joinStrings joins strings with a separator (avoiding strings package import).
func joinStrings(strs []string, sep string) string {
	if len(strs) == 0 {
		return ""
	}
	result := strs[0]
	for _, s := range strs[1:] {
		result += sep + s
	}
	return result
}
