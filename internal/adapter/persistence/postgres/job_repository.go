package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/jmoiron/sqlx"
)

const jobColumns = `id, customer_name, customer_phone, customer_alt_phone, customer_address, customer_location,
	device_type, device_issue, notes, time_slot, technician_id, assigned_by, status, timeline,
	qc_before, qc_after, service_charge, parts_cost, gst, total, payment_method, created_by, created_at, updated_at`

type jobRow struct {
	ID               string         `db:"id"`
	CustomerName     string         `db:"customer_name"`
	CustomerPhone    string         `db:"customer_phone"`
	CustomerAltPhone string         `db:"customer_alt_phone"`
	CustomerAddress  string         `db:"customer_address"`
	CustomerLocation string         `db:"customer_location"`
	DeviceType       string         `db:"device_type"`
	DeviceIssue      string         `db:"device_issue"`
	Notes            string         `db:"notes"`
	TimeSlot         string         `db:"time_slot"`
	TechnicianID     sql.NullString `db:"technician_id"`
	AssignedBy       sql.NullString `db:"assigned_by"`
	Status           string         `db:"status"`
	Timeline         []byte         `db:"timeline"`
	QCBefore         []byte         `db:"qc_before"`
	QCAfter          []byte         `db:"qc_after"`
	ServiceCharge    float64        `db:"service_charge"`
	PartsCost        float64        `db:"parts_cost"`
	GST              float64        `db:"gst"`
	Total            float64        `db:"total"`
	PaymentMethod    string         `db:"payment_method"`
	CreatedBy        string         `db:"created_by"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type historyRow struct {
	ID        string    `db:"id"`
	JobID     string    `db:"job_id"`
	Status    string    `db:"status"`
	ChangedBy string    `db:"changed_by"`
	ChangedAt time.Time `db:"changed_at"`
}

// JobRepository stores jobs and history in one database so a status change
// and its history row commit in the same transaction.
type JobRepository struct {
	db *sqlx.DB
}

var (
	_ interfaces.IJobRepository     = (*JobRepository)(nil)
	_ interfaces.IHistoryRepository = (*JobRepository)(nil)
)

func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job entities.Job, first entities.StatusHistoryEntry) (entities.Job, error) {
	row, err := toJobRow(job)
	if err != nil {
		return entities.Job{}, err
	}
	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (
			:id, :customer_name, :customer_phone, :customer_alt_phone, :customer_address, :customer_location,
			:device_type, :device_issue, :notes, :time_slot, :technician_id, :assigned_by, :status, :timeline,
			:qc_before, :qc_after, :service_charge, :parts_cost, :gst, :total, :payment_method, :created_by, :created_at, :updated_at)`, row); err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
		return insertHistory(ctx, tx, first)
	})
	if err != nil {
		return entities.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	var row jobRow
	err := r.db.GetContext(ctx, &row, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Job{}, nil
		}
		return entities.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	return fromJobRow(row)
}

func (r *JobRepository) List(ctx context.Context, filter entities.JobFilter) ([]entities.Job, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TechnicianID != "" {
		args = append(args, filter.TechnicianID)
		where = append(where, fmt.Sprintf("technician_id = $%d", len(args)))
	}
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]entities.Job, 0, len(rows))
	for _, row := range rows {
		j, err := fromJobRow(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ApplyStatusChange locks the row, checks the expected status, writes the new
// state and appends history in one transaction.
func (r *JobRepository) ApplyStatusChange(ctx context.Context, change entities.StatusChange) (entities.Job, error) {
	var updated entities.Job
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var row jobRow
		err := tx.GetContext(ctx, &row, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, change.JobID)
		if errors.Is(err, sql.ErrNoRows) {
			return interfaces.ErrConditionFailed
		}
		if err != nil {
			return fmt.Errorf("lock job %s: %w", change.JobID, err)
		}
		current, err := fromJobRow(row)
		if err != nil {
			return err
		}
		if current.Status != change.From {
			return interfaces.ErrConditionFailed
		}

		updated = change.Apply(current)
		next, err := toJobRow(updated)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `UPDATE jobs SET
				status = $3, timeline = $4, technician_id = $5, assigned_by = $6,
				qc_before = $7, qc_after = $8, service_charge = $9, parts_cost = $10, gst = $11, total = $12,
				payment_method = $13, updated_at = $14
			WHERE id = $1 AND status = $2`,
			change.JobID, string(change.From),
			next.Status, next.Timeline, next.TechnicianID, next.AssignedBy,
			next.QCBefore, next.QCAfter, next.ServiceCharge, next.PartsCost, next.GST, next.Total,
			next.PaymentMethod, next.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update job %s: %w", change.JobID, err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return interfaces.ErrConditionFailed
		}
		return insertHistory(ctx, tx, change.History)
	})
	if err != nil {
		return entities.Job{}, err
	}
	return updated, nil
}

func (r *JobRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.StatusHistoryEntry, error) {
	var rows []historyRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, job_id, status, changed_by, changed_at FROM job_status_history
		 WHERE job_id = $1 ORDER BY changed_at ASC, id ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list history %s: %w", jobID, err)
	}
	entries := make([]entities.StatusHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entities.StatusHistoryEntry{
			ID:        row.ID,
			JobID:     row.JobID,
			Status:    entities.JobStatus(row.Status),
			ChangedBy: row.ChangedBy,
			ChangedAt: row.ChangedAt.UTC(),
		})
	}
	return entries, nil
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, h entities.StatusHistoryEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO job_status_history (id, job_id, status, changed_by, changed_at) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.JobID, string(h.Status), h.ChangedBy, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert history for %s: %w", h.JobID, err)
	}
	return nil
}

func toJobRow(j entities.Job) (jobRow, error) {
	timeline, err := json.Marshal(j.Timeline)
	if err != nil {
		return jobRow{}, err
	}
	qcBefore, err := marshalQC(j.QCBefore)
	if err != nil {
		return jobRow{}, err
	}
	qcAfter, err := marshalQC(j.QCAfter)
	if err != nil {
		return jobRow{}, err
	}
	return jobRow{
		ID:               j.ID,
		CustomerName:     j.Customer.Name,
		CustomerPhone:    j.Customer.Phone,
		CustomerAltPhone: j.Customer.AltPhone,
		CustomerAddress:  j.Customer.Address,
		CustomerLocation: j.Customer.Location,
		DeviceType:       j.Device.Type,
		DeviceIssue:      j.Device.Issue,
		Notes:            j.Notes,
		TimeSlot:         j.TimeSlot,
		TechnicianID:     nullString(j.TechnicianID),
		AssignedBy:       nullString(j.AssignedBy),
		Status:           string(j.Status),
		Timeline:         timeline,
		QCBefore:         qcBefore,
		QCAfter:          qcAfter,
		ServiceCharge:    j.Financials.ServiceCharge,
		PartsCost:        j.Financials.PartsCost,
		GST:              j.Financials.GST,
		Total:            j.Financials.Total,
		PaymentMethod:    string(j.PaymentMethod),
		CreatedBy:        j.CreatedBy,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}, nil
}

func fromJobRow(row jobRow) (entities.Job, error) {
	j := entities.Job{
		ID: row.ID,
		Customer: entities.Customer{
			Name:     row.CustomerName,
			Phone:    row.CustomerPhone,
			AltPhone: row.CustomerAltPhone,
			Address:  row.CustomerAddress,
			Location: row.CustomerLocation,
		},
		Device:        entities.Device{Type: row.DeviceType, Issue: row.DeviceIssue},
		Notes:         row.Notes,
		TimeSlot:      row.TimeSlot,
		TechnicianID:  row.TechnicianID.String,
		AssignedBy:    row.AssignedBy.String,
		Status:        entities.JobStatus(row.Status),
		Financials:    entities.Financials{ServiceCharge: row.ServiceCharge, PartsCost: row.PartsCost, GST: row.GST, Total: row.Total},
		PaymentMethod: entities.PaymentMethod(row.PaymentMethod),
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
	if len(row.Timeline) > 0 {
		if err := json.Unmarshal(row.Timeline, &j.Timeline); err != nil {
			return entities.Job{}, fmt.Errorf("decode timeline of %s: %w", row.ID, err)
		}
	}
	var err error
	if j.QCBefore, err = unmarshalQC(row.QCBefore); err != nil {
		return entities.Job{}, fmt.Errorf("decode qc_before of %s: %w", row.ID, err)
	}
	if j.QCAfter, err = unmarshalQC(row.QCAfter); err != nil {
		return entities.Job{}, fmt.Errorf("decode qc_after of %s: %w", row.ID, err)
	}
	return j, nil
}

func marshalQC(q *entities.QCReport) ([]byte, error) {
	if q == nil {
		return nil, nil
	}
	return json.Marshal(q)
}

func unmarshalQC(b []byte) (*entities.QCReport, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var q entities.QCReport
	if err := json.Unmarshal(b, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
