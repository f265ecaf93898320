package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/model"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
)

var (
	ErrExportNoData       = errors.New("no feedback data to export")
	ErrExportGenerateFail = errors.New("generating excel file failed")
)

// ExportService renders rating rows as an Excel workbook. Pure formatting
// over the raw listing; no aggregation logic lives here.
type ExportService interface {
	// ExportRatings exports all ratings, or the subset for one teacher or
	// one subject. Returns the workbook bytes and a suggested filename.
	ExportRatings(ctx context.Context, teacher, subject string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{
	"Teacher", "Subject", "Semester", "Session", "Branch",
	"Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7", "Q8", "Q9", "Q10",
	"Comment", "Submitted At",
}

func (s *exportService) ExportRatings(ctx context.Context, teacher, subject string) (*bytes.Buffer, string, error) {
	ratings, err := s.repo.Rating.List(ctx, teacher, subject)
	if err != nil {
		s.logger.Error("querying ratings for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(ratings) == 0 {
		return nil, "", ErrExportNoData
	}

	title := "All Feedback"
	scope := "all"
	switch {
	case teacher != "":
		title = teacher
		scope = safeFilenamePart(teacher)
	case subject != "":
		title = subject
		scope = safeFilenamePart(subject)
	}

	buf, err := s.buildWorkbook(ratings, title)
	if err != nil {
		s.logger.Error("building workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("feedback_%s_%s.xlsx", scope, time.Now().Format("20060102_150405"))
	return buf, filename, nil
}

func (s *exportService) buildWorkbook(ratings []model.Rating, title string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// excel caps sheet names at 31 characters
	sheet := title
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, r := range ratings {
		row := i + 2
		scores := r.Scores()
		values := []interface{}{
			r.Teacher, r.Subject, r.Semester, r.AcademicSession, r.Branch,
		}
		for _, score := range scores {
			values = append(values, score)
		}
		values = append(values, r.Comment, r.SubmittedAt.Format("2006-01-02 15:04:05"))

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// readable default widths: wide for names and comments, narrow for scores
	if err := f.SetColWidth(sheet, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "F", "O", 6); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "P", "Q", 40); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func safeFilenamePart(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
