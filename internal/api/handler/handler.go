package handler

import (
	"github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/service"
)

// Handler aggregates all handlers.
type Handler struct {
	Auth     *AuthHandler
	Feedback *FeedbackHandler
	Admin    *AdminHandler
	Catalog  *CatalogHandler
	Export   *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service, store *catalog.Store) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Feedback: NewFeedbackHandler(svc.Token, svc.Feedback, store),
		Admin:    NewAdminHandler(svc.Token, svc.Stats),
		Catalog:  NewCatalogHandler(svc.Catalog),
		Export:   NewExportHandler(svc.Export),
	}
}
