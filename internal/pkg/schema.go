package pkg

import (
	"fmt"

	"gorm.io/gorm"
)

// ColumnInfo describes one mapped column of a model.
type ColumnInfo struct {
	Name       string `json:"name"`
	Field      string `json:"field"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key"`
	NotNull    bool   `json:"not_null"`
	Unique     bool   `json:"unique"`
	Size       int    `json:"size,omitempty"`
}

// DescribeModel lists the columns gorm maps for model, in declaration order,
// with SQL types as rendered by db's dialect. Fields without a column are
// skipped.
func DescribeModel(db *gorm.DB, model any) ([]ColumnInfo, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("parse model %T: %w", model, err)
	}

	cols := make([]ColumnInfo, 0, len(stmt.Schema.DBNames))
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		cols = append(cols, ColumnInfo{
			Name:       f.DBName,
			Field:      f.Name,
			Type:       db.Dialector.DataTypeOf(f),
			PrimaryKey: f.PrimaryKey,
			NotNull:    f.NotNull || f.PrimaryKey,
			Unique:     f.Unique,
			Size:       f.Size,
		})
	}
	return cols, nil
}
