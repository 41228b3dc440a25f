package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"material-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// RequiredFolders are the prefixes availability reports and published exports are written under.
var RequiredFolders = []string{"reports/availability", "exports/cursos"}

// Folder is one required prefix and whether any object lives under it.
type Folder struct {
	Prefix  string `json:"prefix"`
	Present bool   `json:"present"`
}

// StructureReport describes the bucket layout.
type StructureReport struct {
	Bucket  string   `json:"bucket"`
	Folders []Folder `json:"folders"`
	Created []string `json:"created,omitempty"`
}

// Missing returns the prefixes with nothing under them.
func (r *StructureReport) Missing() []string {
	missing := []string{}
	for _, f := range r.Folders {
		if !f.Present {
			missing = append(missing, f.Prefix)
		}
	}
	return missing
}

// Intact reports whether every required folder is present.
func (r *StructureReport) Intact() bool {
	return len(r.Missing()) == 0
}

// CheckStructure inspects the bucket. A missing bucket is an error, not a report.
func CheckStructure(ctx context.Context, client storage.Client, bucket string) (*StructureReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StructureReport{Bucket: bucket, Folders: make([]Folder, 0, len(RequiredFolders))}
	for _, prefix := range RequiredFolders {
		present, err := hasObjects(ctx, client, bucket, folderKey(prefix))
		if err != nil {
			return nil, err
		}
		report.Folders = append(report.Folders, Folder{Prefix: prefix, Present: present})
	}
	return report, nil
}

// FixStructure writes an empty marker object for every missing folder and
// records it in report.Created. It stops at the first failed upload.
func FixStructure(ctx context.Context, client storage.Client, report *StructureReport) error {
	for i, f := range report.Folders {
		if f.Present {
			continue
		}
		key := folderKey(f.Prefix)
		if _, err := client.PutObject(ctx, report.Bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
			return fmt.Errorf("failed to create %s: %w", key, err)
		}
		report.Folders[i].Present = true
		report.Created = append(report.Created, f.Prefix)
	}
	return nil
}

func hasObjects(ctx context.Context, client storage.Client, bucket, prefix string) (bool, error) {
	// Cancel so the listing goroutine stops after the first entry
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

func folderKey(prefix string) string {
	return strings.TrimSuffix(prefix, "/") + "/"
}
