package availability

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"material-manager/core/storage"
)

const reportPrefix = "reports/availability/"

// Archive keeps a copy of every report in object storage.
type Archive struct {
	client storage.Client
	bucket string
}

// NewArchive creates an archive in bucket.
func NewArchive(client storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Key returns the object key of a report.
func Key(r *Report) string {
	return fmt.Sprintf("%s%s/%s.json", reportPrefix, sanitize(r.Curso), r.VerifiedAt.UTC().Format("20060102T150405.000Z"))
}

// Save uploads the report and returns its key.
func (a *Archive) Save(ctx context.Context, r *Report) (string, error) {
	key := Key(r)
	if err := storage.PutJSON(ctx, a.client, a.bucket, key, r); err != nil {
		return "", err
	}
	return key, nil
}

// List returns the keys of a course's archived reports, newest first.
func (a *Archive) List(ctx context.Context, cursoKey string) ([]string, error) {
	keys, err := storage.ListKeys(ctx, a.client, a.bucket, reportPrefix+sanitize(cursoKey)+"/")
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

// Load downloads an archived report.
func (a *Archive) Load(ctx context.Context, key string) (*Report, error) {
	var r Report
	if err := storage.GetJSON(ctx, a.client, a.bucket, key, &r); err != nil {
		return nil, err
	}
	r.ArchiveKey = key
	return &r, nil
}

func sanitize(key string) string {
	key = strings.ReplaceAll(key, "/", "_")
	return path.Clean("/" + key)[1:]
}
