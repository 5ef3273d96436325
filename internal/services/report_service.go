package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"
	"mewayz/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportResult struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	Rows        int    `json:"rows"`
}

// ReportService exports conversion history as CSV into object storage
// and hands back a signed download link.
type ReportService interface {
	ExportConversions(ctx context.Context, programID primitive.ObjectID) (*ReportResult, error)
}

type reportService struct {
	conversionRepo interfaces.ConversionRepository
	storage        storage.Provider
	prefix         string
	logger         *logger.Logger
}

func NewReportService(conversionRepo interfaces.ConversionRepository, store storage.Provider, cfg *config.Config, log *logger.Logger) ReportService {
	return &reportService{
		conversionRepo: conversionRepo,
		storage:        store,
		prefix:         cfg.Referral.ReportPrefix,
		logger:         log,
	}
}

func (s *reportService) ExportConversions(ctx context.Context, programID primitive.ObjectID) (*ReportResult, error) {
	if s.storage == nil {
		return nil, wrapKind(ErrUnavailable, fmt.Errorf("report storage is not configured"))
	}

	params := &utils.PaginationParams{Page: 1, PageSize: utils.MaxPageSize, Sort: "created_at", Order: "desc"}

	var all []*models.ReferralConversion
	for {
		page, total, err := s.conversionRepo.ListByProgram(ctx, programID, "", params)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(all)) >= total || len(page) == 0 {
			break
		}
		params.Page++
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"conversion_id", "referrer_id", "code_id", "type", "status", "value", "currency", "commission", "created_at"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, conversion := range all {
		record := []string{
			conversion.ID.Hex(),
			conversion.ReferrerID.Hex(),
			conversion.CodeID.Hex(),
			string(conversion.Type),
			string(conversion.Status),
			utils.Float64ToString(conversion.Value),
			conversion.Currency,
			utils.Float64ToString(conversion.Commission.Total),
			conversion.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	// Exports bucket by month so object listings stay browsable.
	now := time.Now()
	key := fmt.Sprintf("%s/%s/%s/conversions-%s.csv", s.prefix, programID.Hex(), utils.MonthKey(now), now.Format("20060102-150405"))

	upload, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      &buf,
		ContentType: "text/csv",
		Size:        int64(buf.Len()),
	})
	if err != nil {
		return nil, wrapKind(ErrUnavailable, fmt.Errorf("report upload failed: %w", err))
	}

	url, err := s.storage.GetURL(ctx, upload.Key, utils.ReportURLExpiry)
	if err != nil {
		url = upload.URL
	}

	s.logger.WithProgramID(programID).WithField("rows", len(all)).Info("conversion report exported")

	return &ReportResult{
		Key:         upload.Key,
		DownloadURL: url,
		Rows:        len(all),
	}, nil
}
