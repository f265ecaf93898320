package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
)

var ErrTemplateNotFound = errors.New("template not found")

// CatalogService exposes the catalog document to the operator. Changes take
// effect for sessions created afterwards; in-progress sessions keep the
// combo count they started with.
type CatalogService interface {
	Get(ctx context.Context) (*dto.CatalogResponse, error)
	Update(ctx context.Context, req *dto.UpdateCatalogRequest) (*dto.CatalogResponse, error)
	Templates(ctx context.Context) (map[string]catalog.Template, error)
	SaveTemplate(ctx context.Context, req *dto.SaveTemplateRequest) error
	DeleteTemplate(ctx context.Context, name string) error
	ApplyTemplate(ctx context.Context, name string) (*dto.CatalogResponse, error)
}

type catalogService struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService instance.
func NewCatalogService(store *catalog.Store, logger *zap.Logger) CatalogService {
	return &catalogService{store: store, logger: logger}
}

func (s *catalogService) Get(ctx context.Context) (*dto.CatalogResponse, error) {
	snap, err := s.store.Load()
	if err != nil {
		s.logger.Error("loading catalog failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(snap), nil
}

func (s *catalogService) Update(ctx context.Context, req *dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	if req.Combos != nil {
		combos := make([]catalog.Combo, len(*req.Combos))
		for i, c := range *req.Combos {
			combos[i] = catalog.Combo{Teacher: c.Teacher, Subject: c.Subject}
		}
		if err := s.store.SaveCombos(combos); err != nil {
			s.logger.Error("saving combos failed", zap.Error(err))
			return nil, err
		}
		s.logger.Info("catalog combos replaced", zap.Int("count", len(combos)))
	}

	if req.Period != nil {
		period := catalog.Period{
			Semester: req.Period.Semester,
			Session:  req.Period.Session,
			Branch:   req.Period.Branch,
		}
		if err := s.store.SavePeriod(period); err != nil {
			s.logger.Error("saving period failed", zap.Error(err))
			return nil, err
		}
	}

	return s.Get(ctx)
}

func (s *catalogService) Templates(ctx context.Context) (map[string]catalog.Template, error) {
	templates, err := s.store.Templates()
	if err != nil {
		s.logger.Error("loading templates failed", zap.Error(err))
		return nil, err
	}
	return templates, nil
}

func (s *catalogService) SaveTemplate(ctx context.Context, req *dto.SaveTemplateRequest) error {
	combos := make([]catalog.Combo, len(req.Combos))
	for i, c := range req.Combos {
		combos[i] = catalog.Combo{Teacher: c.Teacher, Subject: c.Subject}
	}
	t := catalog.Template{
		Semester: req.Semester,
		Session:  req.Session,
		Branch:   req.Branch,
		Combos:   combos,
	}
	if err := s.store.SaveTemplate(req.Name, t); err != nil {
		s.logger.Error("saving template failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *catalogService) DeleteTemplate(ctx context.Context, name string) error {
	err := s.store.DeleteTemplate(name)
	if err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("deleting template failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *catalogService) ApplyTemplate(ctx context.Context, name string) (*dto.CatalogResponse, error) {
	if err := s.store.ApplyTemplate(name); err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("applying template failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("catalog template applied")
	return s.Get(ctx)
}

func (s *catalogService) toResponse(snap *catalog.Snapshot) *dto.CatalogResponse {
	return &dto.CatalogResponse{
		Combos:    snap.Combos,
		Period:    snap.Period,
		Questions: catalog.Questions,
	}
}
