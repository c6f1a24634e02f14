// Package storage provides the object storage used to archive reconciliation reports.
//
// It wraps the MinIO Go client (S3 compatible) behind a small Client interface so
// storage interactions can be mocked in tests (see core/storage/mocks).
//
// # Archive
//
// Archive writes JSON documents under prefix/YYYY/MM/DD/<name>.json. The line item
// feature stores every successful reconciliation result there, keyed by ray id.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
//	key, err := archive.PutJSON(ctx, rayID, result)
package storage
