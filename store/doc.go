// Package store provides the single-table DynamoDB data access layer.
//
// All entities live in one table addressed by a composite (PK, SK) pair
// built from TYPE#id segments. Root items carry a GSI1 projection for
// alternate access patterns (list events by status, ordered by start date).
// Child entities share the root's partition key and are namespaced by a
// sort-key prefix, so every list operation is a partition query optionally
// narrowed by begins_with on the sort key.
package store
