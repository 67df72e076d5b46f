// Package model defines the validated entity shapes of the event-planning
// API and their request variants.
//
// Each mutable entity has a creation variant (server-assigned fields
// omitted) and, where the API supports it, a partial-update variant with
// every field optional. Struct fields carry both json tags (the API wire
// format) and dynamodbav tags (the persisted attribute names); the two sets
// of names are identical except for the table key attributes, which are
// never exposed on the wire.
package model
