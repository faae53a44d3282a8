package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/integrations/backend"
)

// PDFDocument - поток PDF от API. Вызывающий закрывает Body.
type PDFDocument struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

type EquipementRepositoryInterface interface {
	GetEquipements(ctx context.Context, token string) ListResult[entities.Equipement]
	FindEquipement(ctx context.Context, token string, id int) (*entities.Equipement, error)
	CreateEquipement(ctx context.Context, token string, payload dto.EquipementDTO) (*entities.Equipement, error)
	UpdateEquipement(ctx context.Context, token string, id int, payload dto.EquipementDTO) (*entities.Equipement, error)
	DeleteEquipement(ctx context.Context, token string, id int) error
	ExportPDF(ctx context.Context, token string) (*PDFDocument, error)
	SendPDFByEmail(ctx context.Context, token string, payload dto.EquipementsPDFEmailDTO) error
}

type EquipementRepository struct {
	api    API
	logger *zap.Logger
}

func NewEquipementRepository(api API, logger *zap.Logger) EquipementRepositoryInterface {
	return &EquipementRepository{api: api, logger: logger}
}

func (r *EquipementRepository) GetEquipements(ctx context.Context, token string) ListResult[entities.Equipement] {
	return fetchList[entities.Equipement](ctx, r.api, r.logger, token, backend.PathEquipements)
}

func (r *EquipementRepository) FindEquipement(ctx context.Context, token string, id int) (*entities.Equipement, error) {
	e, err := fetchOne[entities.Equipement](ctx, r.api, token, backend.ItemPath(backend.PathEquipements, id))
	if err != nil {
		return nil, fmt.Errorf("lecture de l'équipement %d: %w", id, err)
	}
	return e, nil
}

func (r *EquipementRepository) CreateEquipement(ctx context.Context, token string, payload dto.EquipementDTO) (*entities.Equipement, error) {
	e, err := send[entities.Equipement](ctx, r.api, http.MethodPost, token, backend.PathEquipements, payload)
	if err != nil {
		return nil, fmt.Errorf("création de l'équipement: %w", err)
	}
	return e, nil
}

func (r *EquipementRepository) UpdateEquipement(ctx context.Context, token string, id int, payload dto.EquipementDTO) (*entities.Equipement, error) {
	e, err := send[entities.Equipement](ctx, r.api, http.MethodPatch, token, backend.ItemPath(backend.PathEquipements, id), payload)
	if err != nil {
		return nil, fmt.Errorf("mise à jour de l'équipement %d: %w", id, err)
	}
	return e, nil
}

func (r *EquipementRepository) DeleteEquipement(ctx context.Context, token string, id int) error {
	if err := r.api.Delete(ctx, token, backend.ItemPath(backend.PathEquipements, id)); err != nil {
		return fmt.Errorf("suppression de l'équipement %d: %w", id, err)
	}
	return nil
}

// ExportPDF проксирует PDF, который генерирует API.
func (r *EquipementRepository) ExportPDF(ctx context.Context, token string) (*PDFDocument, error) {
	resp, err := r.api.Stream(ctx, token, http.MethodGet, backend.PathEquipementsPDF, nil)
	if err != nil {
		return nil, fmt.Errorf("export PDF des équipements: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &PDFDocument{Body: resp.Body, ContentType: contentType, ContentLength: resp.ContentLength}, nil
}

func (r *EquipementRepository) SendPDFByEmail(ctx context.Context, token string, payload dto.EquipementsPDFEmailDTO) error {
	if err := r.api.Post(ctx, token, backend.PathEquipementsPDFMail, payload, nil); err != nil {
		return fmt.Errorf("envoi du PDF des équipements à %s: %w", payload.Email, err)
	}
	return nil
}
