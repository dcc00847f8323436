/*
Package orm stores typed models in prefixed sections of the key value
store called buckets.

A bucket holds a single model type under a primary key. It may maintain
secondary indexes, which is how savings accounts are listed by owner.
ModelBucket adds auto incremented sequence keys on top, used for account
ids.

Models are serialized with go-amino.
*/
package orm
