package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// employeeRow maps the employee table for gorm.
type employeeRow struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:50;not null"`
	Email     string    `gorm:"column:email;size:254;not null"`
	Phone     string    `gorm:"column:phone;size:10;not null"`
	Address   string    `gorm:"column:address;size:200;not null"`
	CreatedAt time.Time `gorm:"column:created_at;<-:false"`
}

func (employeeRow) TableName() string {
	return "employee"
}

// ParseMySQLDSN parses dsn and switches on parseTime, which scanning created_at into time.Time needs.
func ParseMySQLDSN(dsn string) (*mysqldriver.Config, error) {
	dsnCfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql dsn: %w", err)
	}
	dsnCfg.ParseTime = true

	return dsnCfg, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
	}
}

// NewMySQL returns a connected GORM DB instance. An unreachable server is reported as ErrConnectionFailure.
func NewMySQL(dsn string) (*gorm.DB, error) {
	ctxTimeout := 5 * time.Second

	dsnCfg, err := ParseMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{DSN: dsnCfg.FormatDSN(), DSNConfig: dsnCfg}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: connect mysql: %w", ErrConnectionFailure, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get mysql handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ctxTimeout)
	defer cancel()

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to ping MySQL DB: %w", ErrConnectionFailure, err)
	}

	return gdb, nil
}

// MySQLRepository is the MySQL implementation of EmployeeRepoIface.
type MySQLRepository struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewMySQLEmployeeRepository(db *gorm.DB, metrics *metrics.Metrics) *MySQLRepository {
	return &MySQLRepository{db: db, metrics: metrics}
}

// Insert saves a validated employee record, writing only the client-supplied columns.
func (r *MySQLRepository) Insert(ctx context.Context, record models.CleanRecord) error {
	startTime := time.Now()
	defer func() {
		r.metrics.ObserveQuery("insert_employee", time.Since(startTime).Seconds())
	}()

	row := employeeRow{
		Name:    record.Name,
		Email:   record.Email,
		Phone:   record.Phone,
		Address: record.Address,
	}

	res := r.db.WithContext(ctx).Select("Name", "Email", "Phone", "Address").Create(&row)
	if res.Error != nil {
		return classify(ErrWriteFailure, res.Error)
	}

	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: %d rows affected", ErrWriteFailure, res.RowsAffected)
	}

	return nil
}

// ListAll retrieves all employees ordered by id, newest first.
func (r *MySQLRepository) ListAll(ctx context.Context) ([]models.Employee, error) {
	startTime := time.Now()
	defer func() {
		r.metrics.ObserveQuery("list_employees", time.Since(startTime).Seconds())
	}()

	var rows []employeeRow
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, classify(ErrQueryFailed, err)
	}

	employees := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, models.Employee{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Address:   row.Address,
			CreatedAt: row.CreatedAt,
		})
	}

	return employees, nil
}

// Ping reports whether the MySQL server is reachable.
func (r *MySQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get mysql handle: %w", err)
	}

	return sqlDB.PingContext(ctx)
}
