package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/api/drive/v3"
)

type Revision struct {
	ID       string
	Modified time.Time
}

func (r Revision) String() string {
	return fmt.Sprintf("%v  %v", r.ID, r.Modified.Format("2006-01-02 15:04:05"))
}

// LatestRevision pages through the Drive revision list for a file and returns the most
// recently modified revision.
func LatestRevision(ctx context.Context, gdrive *drive.Service, fileId string) (*Revision, error) {
	page := ""
	latest := Revision{}

	for {
		call := gdrive.Revisions.List(fileId).Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, errors.Wrap(err, "unable to retrieve revisions")
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339Nano, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.Modified.Before(datetime) {
				latest.ID = revision.Id
				latest.Modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.Modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileId)
	}

	return &latest, nil
}
