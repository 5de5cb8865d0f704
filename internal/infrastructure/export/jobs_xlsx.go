// Package export renders job reports.
package export

import (
	"fmt"
	"io"
	"time"

	"repairdesk/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

const (
	jobsSheet     = "Jobs"
	timelineSheet = "Timeline"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var jobHeaders = []any{
	"Job ID", "Status", "Customer", "Phone", "Address", "Device", "Issue", "Time slot",
	"Technician", "Service charge", "Parts cost", "GST", "Total", "Payment method", "Created at",
}

// WriteJobsXLSX writes one row per job on the Jobs sheet and one row per job
// with every reached timeline step on the Timeline sheet.
func WriteJobsXLSX(w io.Writer, jobs []entities.Job) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), jobsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(timelineSheet); err != nil {
		return err
	}

	header, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	money, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	if err := writeRow(f, jobsSheet, 1, jobHeaders); err != nil {
		return err
	}
	_ = f.SetCellStyle(jobsSheet, "A1", cellName(len(jobHeaders), 1), header)

	timelineHeaders := make([]any, 0, len(entities.JobStatusOrder)+1)
	timelineHeaders = append(timelineHeaders, "Job ID")
	for _, s := range entities.JobStatusOrder {
		timelineHeaders = append(timelineHeaders, string(s))
	}
	if err := writeRow(f, timelineSheet, 1, timelineHeaders); err != nil {
		return err
	}
	_ = f.SetCellStyle(timelineSheet, "A1", cellName(len(timelineHeaders), 1), header)

	for i, j := range jobs {
		row := i + 2
		if err := writeRow(f, jobsSheet, row, []any{
			j.ID, string(j.Status), j.Customer.Name, j.Customer.Phone, j.Customer.Address,
			j.Device.Type, j.Device.Issue, j.TimeSlot, j.TechnicianID,
			j.Financials.ServiceCharge, j.Financials.PartsCost, j.Financials.GST, j.Financials.Total,
			string(j.PaymentMethod), j.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}

		steps := []any{j.ID}
		for _, s := range entities.JobStatusOrder {
			if at := j.Timeline.At(s); at != nil {
				steps = append(steps, at.Format(time.RFC3339))
			} else {
				steps = append(steps, "")
			}
		}
		if err := writeRow(f, timelineSheet, row, steps); err != nil {
			return err
		}
	}
	if len(jobs) > 0 {
		_ = f.SetCellStyle(jobsSheet, cellName(10, 2), cellName(13, len(jobs)+1), money)
	}
	_ = f.SetColWidth(jobsSheet, "A", "A", 38)
	_ = f.SetColWidth(timelineSheet, "A", "A", 38)
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, cellName(1, row), &values)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
