// Package storetest provides an in-memory fake of the store's DynamoDB API
// for use in package tests across the repo.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table is an in-memory single-table fake implementing the store.API
// interface. It understands exactly the expression shapes the store
// generates: point lookups, SET merge updates with #attrN/:valN aliases,
// partition queries with optional begins_with/equality sort-key narrowing,
// GSI1 queries, the root-item scan, and bulk deletes.
type Table struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue

	// BatchSizes records the size of each BatchWriteItem call, so tests can
	// assert the 25-item chunking behaviour.
	BatchSizes []int

	// Optional injected failures, returned verbatim by the matching method.
	GetErr    error
	PutErr    error
	UpdateErr error
	DeleteErr error
	QueryErr  error
	ScanErr   error
	BatchErr  error
}

// New creates an empty fake table.
func New() *Table {
	return &Table{items: make(map[string]map[string]map[string]types.AttributeValue)}
}

// Item returns the raw stored item at (pk, sk), or nil when absent. Tests
// use it to assert persisted attributes the API response strips.
func (t *Table) Item(pk, sk string) map[string]types.AttributeValue {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyItem(t.items[pk][sk])
}

// StringAttr returns the string value of the named attribute, or "" when
// the attribute is absent or not a string.
func StringAttr(item map[string]types.AttributeValue, name string) string {
	return stringValue(item[name])
}

// Len returns the total number of stored items.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, partition := range t.items {
		n += len(partition)
	}
	return n
}

func (t *Table) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if t.GetErr != nil {
		return nil, t.GetErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pk, sk := keyStrings(params.Key)
	item := t.items[pk][sk]
	if item == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (t *Table) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if t.PutErr != nil {
		return nil, t.PutErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pk, sk := keyStrings(params.Item)
	if pk == "" || sk == "" {
		return nil, fmt.Errorf("storetest: item has no PK/SK")
	}
	t.put(pk, sk, copyItem(params.Item))
	return &dynamodb.PutItemOutput{}, nil
}

func (t *Table) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if t.UpdateErr != nil {
		return nil, t.UpdateErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pk, sk := keyStrings(params.Key)
	item := t.items[pk][sk]
	if item == nil {
		// Like DynamoDB, UpdateItem on a missing key creates the item.
		item = map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		}
	} else {
		item = copyItem(item)
	}

	expr := strings.TrimPrefix(deref(params.UpdateExpression), "SET ")
	for _, clause := range strings.Split(expr, ", ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("storetest: unsupported update clause %q", clause)
		}
		name, ok := params.ExpressionAttributeNames[parts[0]]
		if !ok {
			return nil, fmt.Errorf("storetest: unresolved attribute alias %q", parts[0])
		}
		value, ok := params.ExpressionAttributeValues[parts[1]]
		if !ok {
			return nil, fmt.Errorf("storetest: unresolved value alias %q", parts[1])
		}
		item[name] = value
	}

	t.put(pk, sk, item)
	return &dynamodb.UpdateItemOutput{}, nil
}

func (t *Table) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if t.DeleteErr != nil {
		return nil, t.DeleteErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pk, sk := keyStrings(params.Key)
	delete(t.items[pk], sk)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (t *Table) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if t.QueryErr != nil {
		return nil, t.QueryErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	pkValue := stringValue(params.ExpressionAttributeValues[":pk"])
	expr := deref(params.KeyConditionExpression)

	var matched []map[string]types.AttributeValue
	if params.IndexName != nil {
		// GSI1 query: match the projection attributes across partitions.
		for _, partition := range t.items {
			for _, item := range partition {
				if stringValue(item["GSI1PK"]) == pkValue {
					matched = append(matched, copyItem(item))
				}
			}
		}
		sortItemsBy(matched, "GSI1SK", ascending(params.ScanIndexForward))
	} else {
		prefix := stringValue(params.ExpressionAttributeValues[":skPrefix"])
		exact := stringValue(params.ExpressionAttributeValues[":sk"])
		for sk, item := range t.items[pkValue] {
			switch {
			case strings.Contains(expr, "begins_with"):
				if !strings.HasPrefix(sk, prefix) {
					continue
				}
			case strings.Contains(expr, "SK = :sk"):
				if sk != exact {
					continue
				}
			}
			matched = append(matched, copyItem(item))
		}
		sortItemsBy(matched, "SK", ascending(params.ScanIndexForward))
	}

	if params.Limit != nil && int(*params.Limit) < len(matched) {
		matched = matched[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: matched}, nil
}

func (t *Table) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if t.ScanErr != nil {
		return nil, t.ScanErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	skEquals := stringValue(params.ExpressionAttributeValues[":metadata"])
	pkPrefix := stringValue(params.ExpressionAttributeValues[":prefix"])

	var matched []map[string]types.AttributeValue
	for pk, partition := range t.items {
		if !strings.HasPrefix(pk, pkPrefix) {
			continue
		}
		for sk, item := range partition {
			if sk == skEquals {
				matched = append(matched, copyItem(item))
			}
		}
	}
	sortItemsBy(matched, "PK", true)
	return &dynamodb.ScanOutput{Items: matched}, nil
}

func (t *Table) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if t.BatchErr != nil {
		return nil, t.BatchErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, requests := range params.RequestItems {
		if len(requests) > 25 {
			return nil, fmt.Errorf("storetest: batch of %d exceeds the 25-item limit", len(requests))
		}
		t.BatchSizes = append(t.BatchSizes, len(requests))
		for _, request := range requests {
			if request.DeleteRequest == nil {
				return nil, fmt.Errorf("storetest: only DeleteRequest is supported")
			}
			pk, sk := keyStrings(request.DeleteRequest.Key)
			delete(t.items[pk], sk)
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (t *Table) put(pk, sk string, item map[string]types.AttributeValue) {
	partition, ok := t.items[pk]
	if !ok {
		partition = make(map[string]map[string]types.AttributeValue)
		t.items[pk] = partition
	}
	partition[sk] = item
}

func keyStrings(attrs map[string]types.AttributeValue) (pk, sk string) {
	return stringValue(attrs["PK"]), stringValue(attrs["SK"])
}

func stringValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func sortItemsBy(items []map[string]types.AttributeValue, attr string, asc bool) {
	sort.Slice(items, func(i, j int) bool {
		a, b := stringValue(items[i][attr]), stringValue(items[j][attr])
		if asc {
			return a < b
		}
		return a > b
	})
}

func ascending(forward *bool) bool {
	return forward == nil || *forward
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
