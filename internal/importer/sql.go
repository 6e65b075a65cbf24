package importer

import (
	"context"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DefaultTable is the table read when none is given.
const DefaultTable = "products"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// RowSource yields the raw rows of a table as column maps.
type RowSource interface {
	Rows(ctx context.Context, table string) ([]map[string]interface{}, error)
}

// GormSource reads rows through a gorm connection.
type GormSource struct {
	db *gorm.DB
}

var _ RowSource = (*GormSource)(nil)

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) Rows(ctx context.Context, table string) ([]map[string]interface{}, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, errors.Errorf("invalid table name %q", table)
	}
	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "query table %s", table)
	}
	return rows, nil
}

// sqlRow mirrors the columns of the products table. Columns other than
// type are optional.
type sqlRow struct {
	Type         string      `mapstructure:"type"`
	ID           string      `mapstructure:"id"`
	Name         string      `mapstructure:"name"`
	Quality      float64     `mapstructure:"quality"`
	ExpiryDate   interface{} `mapstructure:"expiry_date"`
	BasePrice    float64     `mapstructure:"base_price"`
	MeatType     string      `mapstructure:"meat_type"`
	VacuumPacked interface{} `mapstructure:"vacuum_packed"`
}

func decodeRow(raw map[string]interface{}) (f fields, err error) {
	var row sqlRow
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &row,
	})
	if err != nil {
		return f, err
	}
	if err = dec.Decode(lowerKeys(raw)); err != nil {
		return f, errors.Wrap(err, "decode row")
	}
	f.typ = strings.TrimSpace(row.Type)
	f.id = strings.TrimSpace(row.ID)
	f.name = strings.TrimSpace(row.Name)
	f.quality = row.Quality
	f.basePrice = row.BasePrice
	if f.expiry, err = dateValue(row.ExpiryDate); err != nil {
		return f, err
	}
	vacuum := row.VacuumPacked
	if vacuum == nil {
		vacuum = ""
	}
	f.meatKind, f.vacuumPacked, err = meatFields(f.typ, row.MeatType, vacuum)
	return f, err
}

func lowerKeys(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// ImportSQL reads every row of table from src. An empty table name reads
// DefaultTable.
func ImportSQL(ctx context.Context, src RowSource, table string, opts Options) (*Result, error) {
	if table == "" {
		table = DefaultTable
	}
	rows, err := src.Rows(ctx, table)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for i, raw := range rows {
		f, err := decodeRow(raw)
		if err == nil {
			p, cerr := opts.construct(f)
			if cerr == nil {
				res.Products = append(res.Products, p)
				continue
			}
			err = cerr
		}
		res.Rejected = append(res.Rejected, &RowError{
			Source: table,
			Line:   i + 1,
			Type:   f.typ,
			ID:     f.id,
			Err:    err,
		})
	}
	return res, nil
}
