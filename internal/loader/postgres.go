package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bigcompany-analysis/internal/apperror"
	"bigcompany-analysis/internal/models"
)

// DBSource reads the employees table. Rows are ordered by ordinal, then id,
// which stands in for file order.
type DBSource struct {
	DB *gorm.DB
}

func (s DBSource) Describe() string {
	return "postgres table " + models.Employee{}.TableName()
}

func (s DBSource) Load(ctx context.Context) (*Dataset, error) {
	var employees []models.Employee
	if err := s.query(ctx).Find(&employees).Error; err != nil {
		return nil, mapDatabaseError(err)
	}
	return datasetFromRows(employees)
}

func (s DBSource) query(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Order("ordinal ASC").
		Order("id ASC")
}

// datasetFromRows funnels query results in result order. Ordinals are
// renumbered from zero, so gaps in the table do not matter.
func datasetFromRows(employees []models.Employee) (*Dataset, error) {
	dataset := newDataset(len(employees))
	for i, employee := range employees {
		if err := dataset.add(i+1, employee); err != nil {
			return nil, err
		}
	}
	return dataset, nil
}

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return apperror.New(apperror.CodeConfig, "employees table not found")
		case "42703":
			return apperror.Newf(apperror.CodeConfig, "employees table has unexpected columns: %s", pgErr.Message)
		case "28P01", "28000":
			return apperror.New(apperror.CodeConfig, "database authentication failed")
		}
	}
	return fmt.Errorf("load employees: %w", err)
}
