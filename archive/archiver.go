package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/kambleakash0/substack-monitor/types"
)

const uploadTimeout = 30 * time.Second

// Archiver writes a JSON record of each delivered summary to S3.
type Archiver struct {
	s3     *S3
	bucket string
	prefix string
}

// NewArchiver wraps an S3 client with a target bucket/prefix.
func NewArchiver(s3c *S3, bucket, prefix string) *Archiver {
	return &Archiver{s3: s3c, bucket: bucket, prefix: prefix}
}

// Archive uploads one summary record under <prefix>summaries/<id>.json.
func (a *Archiver) Archive(ctx context.Context, summary *types.Summary) error {
	payload := map[string]interface{}{
		"post_id":    summary.PostID,
		"post_url":   summary.PostURL,
		"title":      summary.Title,
		"summary":    summary.Text,
		"created_at": summary.CreatedAt,
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := a.prefix + "summaries/" + types.GenerateID(summary.PostID) + ".json"
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}
