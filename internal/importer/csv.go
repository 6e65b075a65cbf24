package importer

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"
)

// Record is one CSV line. The header row must name the columns; only type
// and the columns the type needs are required.
type Record struct {
	Type         string `csv:"type"`
	ID           string `csv:"id"`
	Name         string `csv:"name"`
	Quality      string `csv:"quality"`
	ExpiryDate   string `csv:"expiryDate"`
	BasePrice    string `csv:"defaultPrice"`
	MeatType     string `csv:"meatType"`
	VacuumPacked string `csv:"vacuumPacked"`
}

func (rec *Record) fields() (f fields, err error) {
	f.typ = strings.TrimSpace(rec.Type)
	f.id = strings.TrimSpace(rec.ID)
	f.name = strings.TrimSpace(rec.Name)
	if f.quality, err = cast.ToFloat64E(strings.TrimSpace(rec.Quality)); err != nil {
		return f, errors.Wrapf(err, "invalid quality %q", rec.Quality)
	}
	if f.expiry, err = ParseDate(rec.ExpiryDate); err != nil {
		return f, err
	}
	if price := strings.TrimSpace(rec.BasePrice); price != "" {
		if f.basePrice, err = cast.ToFloat64E(price); err != nil {
			return f, errors.Wrapf(err, "invalid price %q", rec.BasePrice)
		}
	}
	f.meatKind, f.vacuumPacked, err = meatFields(f.typ, rec.MeatType, strings.TrimSpace(rec.VacuumPacked))
	return f, err
}

// ImportCSV reads products from r. source names the input in row errors.
// A malformed header or unreadable input fails the whole import; bad rows
// are collected in Result.Rejected.
func ImportCSV(r io.Reader, source string, opts Options) (*Result, error) {
	var records []*Record
	err := gocsv.UnmarshalCSV(newCSVReader(r), &records)
	if err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, errors.Wrapf(err, "read csv %s", source)
	}
	res := &Result{}
	for i, rec := range records {
		line := i + 2
		f, err := rec.fields()
		if err == nil {
			p, cerr := opts.construct(f)
			if cerr == nil {
				res.Products = append(res.Products, p)
				continue
			}
			err = cerr
		}
		res.Rejected = append(res.Rejected, &RowError{
			Source: source,
			Line:   line,
			Type:   strings.TrimSpace(rec.Type),
			ID:     strings.TrimSpace(rec.ID),
			Err:    err,
		})
	}
	return res, nil
}

// ImportCSVFile opens path and imports it.
func ImportCSVFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open csv file")
	}
	defer f.Close()
	return ImportCSV(f, filepath.Base(path), opts)
}

// ImportCSVFiles imports several files concurrently. Results are merged in
// the order of paths. The first file that cannot be read cancels the rest.
func ImportCSVFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ImportCSVFile(path, opts)
			if err != nil {
				return errors.Wrap(err, path)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	merged := &Result{}
	for _, res := range results {
		merged.merge(res)
	}
	return merged, nil
}

func newCSVReader(r io.Reader) gocsv.CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}
