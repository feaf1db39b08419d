package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/table"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.metadata.readonly"
)

// Number of blank rows left below the data when pruning a worksheet.
const padding = 24

// NEW is the destination prefix that creates a new spreadsheet e.g. 'new:Market Share'.
const NEW = "new:"

// Client reads and writes tables from/to Google Sheets worksheets.
type Client struct {
	google *sheets.Service
	drive  *drive.Service
}

// NewClient creates a Sheets (and Drive) client using an authorised HTTP client. Additional
// options (e.g. option.WithEndpoint) are passed through to both services.
func NewClient(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	google, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return &Client{
		google: google,
		drive:  gdrive,
	}, nil
}

// Fetch retrieves a worksheet range as a table. The location is either a spreadsheet URL or
// a spreadsheet ID.
func (c *Client) Fetch(ctx context.Context, location, area string) (*table.Table, error) {
	id, err := spreadsheetID(location)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(area) == "" {
		return nil, fmt.Errorf("missing spreadsheet range")
	}

	log.Debugf("spreadsheet - ID:%s  range:%s", id, area)

	response, err := c.google.Spreadsheets.Values.Get(id, area).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve data from sheet")
	}

	if len(response.Values) == 0 {
		return nil, fmt.Errorf("no data in spreadsheet/range")
	}

	t, err := makeTable(response.Values)
	if err != nil {
		return nil, err
	}

	log.Debugf("retrieved %v rows x %v columns from %s", t.Len(), t.Width(), area)

	return t, nil
}

// Persist writes a table to the named worksheet, replacing any existing content. The sheet
// is created if it does not exist. A destination of the form 'new:<title>' creates a new
// spreadsheet.
func (c *Client) Persist(ctx context.Context, destination, name string, t *table.Table) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("missing worksheet name")
	}

	spreadsheet, err := c.spreadsheet(ctx, destination, name)
	if err != nil {
		return err
	}

	sheet, err := c.sheet(ctx, spreadsheet, name)
	if err != nil {
		return err
	} else if sheet.Properties != nil && sheet.Properties.Title != "" {
		name = sheet.Properties.Title
	}

	// ... clear existing data
	log.Infof("clearing worksheet '%s'", name)

	if err := clear(ctx, c.google, spreadsheet, []string{quote(name)}); err != nil {
		return errors.Wrapf(err, "error clearing worksheet '%s'", name)
	}

	// ... write table
	values := makeValues(t)
	right := column(max(t.Width(), 1))

	header := sheets.ValueRange{
		Range:  fmt.Sprintf("%s:%s1", cell(name, "A", 1), right),
		Values: values[:1],
	}

	data := sheets.ValueRange{
		Range:  fmt.Sprintf("%s:%s", cell(name, "A", 2), right),
		Values: values[1:],
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             []*sheets.ValueRange{&header, &data},
	}

	log.Infof("writing %v rows to worksheet '%s'", t.Len(), name)

	if _, err := c.google.Spreadsheets.Values.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return errors.Wrapf(err, "error writing to worksheet '%s'", name)
	}

	// ... prune surplus rows
	if err := c.prune(ctx, spreadsheet, sheet, int64(t.Len()+1)); err != nil {
		return err
	}

	return nil
}

// Revision returns the latest revision of a spreadsheet.
func (c *Client) Revision(ctx context.Context, location string) (*Revision, error) {
	id, err := spreadsheetID(location)
	if err != nil {
		return nil, err
	}

	return LatestRevision(ctx, c.drive, id)
}

func (c *Client) spreadsheet(ctx context.Context, destination, name string) (*sheets.Spreadsheet, error) {
	if title, ok := strings.CutPrefix(strings.TrimSpace(destination), NEW); ok {
		rq := sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{
				Title: strings.TrimSpace(title),
			},
			Sheets: []*sheets.Sheet{
				&sheets.Sheet{
					Properties: &sheets.SheetProperties{
						Title: name,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
				},
			},
		}

		spreadsheet, err := c.google.Spreadsheets.Create(&rq).Context(ctx).Do()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create spreadsheet")
		}

		log.Infof("created spreadsheet '%s' %s", title, spreadsheet.SpreadsheetUrl)

		return spreadsheet, nil
	}

	id, err := spreadsheetID(destination)
	if err != nil {
		return nil, err
	}

	return getSpreadsheet(ctx, c.google, id)
}

func (c *Client) sheet(ctx context.Context, spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	if sheet, err := getSheet(spreadsheet, name); err == nil {
		return sheet, nil
	}

	log.Infof("adding worksheet '%s'", name)

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: name,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
				},
			},
		},
	}

	response, err := c.google.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "error adding worksheet '%s'", name)
	}

	if len(response.Replies) == 0 || response.Replies[0].AddSheet == nil {
		return nil, fmt.Errorf("invalid response adding worksheet '%s'", name)
	}

	return &sheets.Sheet{
		Properties: response.Replies[0].AddSheet.Properties,
	}, nil
}

func (c *Client) prune(ctx context.Context, spreadsheet *sheets.Spreadsheet, sheet *sheets.Sheet, rows int64) error {
	if sheet.Properties == nil || sheet.Properties.GridProperties == nil {
		return nil
	}

	if sheet.Properties.GridProperties.RowCount <= rows+padding {
		return nil
	}

	prune := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    sheet.Properties.SheetId,
						Dimension:  "ROWS",
						StartIndex: rows + padding,
					},
				},
			},
		},
	}

	if _, err := c.google.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &prune).Context(ctx).Do(); err != nil {
		return errors.Wrap(err, "error pruning worksheet")
	}

	return nil
}

func spreadsheetID(location string) (string, error) {
	location = strings.TrimSpace(location)
	if IsURL(location) {
		return ParseURL(location)
	}

	if location == "" || strings.ContainsAny(location, "/ ") {
		return "", fmt.Errorf("invalid spreadsheet '%s'", location)
	}

	return location, nil
}

func getSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch spreadsheet")
	}

	return spreadsheet, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && normalise(sheet.Properties.Title) == normalise(name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", name)
}

func clear(ctx context.Context, google *sheets.Service, spreadsheet *sheets.Spreadsheet, ranges []string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := google.Spreadsheets.Values.BatchClear(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
