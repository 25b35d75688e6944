// Package blob stores submission attachments as named binary objects,
// separate from the submission record that references them by key.
package blob

import (
	"context"
	"fmt"
	"path"
)

// Store writes attachment objects under caller-chosen keys.
type Store interface {
	Put(ctx context.Context, key, mediaType string, content []byte) error
}

// ObjectKey builds the deterministic storage key for one attachment part:
// submissions/<submissionID>/<partName>_<filename>. The part name already
// encodes slot and material index, so keys never collide within a submission.
func ObjectKey(submissionID, partName, filename string) string {
	return path.Join("submissions", submissionID, fmt.Sprintf("%s_%s", partName, filename))
}
