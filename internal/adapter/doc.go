// Package adapter integrates external collaborators of the document
// pipeline: the S3-compatible remote blob store holding encrypted document
// bytes, and the provider's presigned-URL capability used to hand out
// time-boxed read access to unencrypted asset blobs.
package adapter
