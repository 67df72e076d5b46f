package store

// Entity type prefixes for the single-table layout. The set is fixed: keys
// written with these prefixes are a persisted contract and must never be
// derived differently for the same entity.
const (
	TypeEvent    = "EVENT"
	TypeUser     = "USER"
	TypeAttendee = "ATTENDEE"
	TypePoll     = "POLL"
	TypeBudget   = "BUDGET"
	TypeVendor   = "VENDOR"
	TypeMedia    = "MEDIA"
	TypeMessage  = "MESSAGE"

	// TypeMetadata is the sentinel sort key of a root item.
	TypeMetadata = "METADATA"

	// TypeStatus and TypeDate are used only in GSI1 projections.
	TypeStatus = "STATUS"
	TypeDate   = "DATE"
)

// Table attribute names.
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrGSI1PK = "GSI1PK"
	AttrGSI1SK = "GSI1SK"
)

// IndexGSI1 is the secondary index over (GSI1PK, GSI1SK).
const IndexGSI1 = "GSI1"

// PartitionKey returns the composite partition key "TYPE#id".
func PartitionKey(entityType, id string) string {
	return entityType + "#" + id
}

// SortKey returns the composite sort key "TYPE#id", or the bare type when
// id is empty (the METADATA sentinel of root items).
func SortKey(entityType, id string) string {
	if id == "" {
		return entityType
	}
	return entityType + "#" + id
}

// Prefix returns the sort-key prefix "TYPE#" that namespaces all child
// items of the given type under a partition.
func Prefix(entityType string) string {
	return entityType + "#"
}
