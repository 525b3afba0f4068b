package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/application/service"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
	"github.com/gstbridge/gstr-ledger/internal/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	importService     *service.ImportService
	documentService   *service.DocumentService
	exportService     *service.ExportService
	ledgerNameService *service.LedgerNameService
	logger            *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	importService *service.ImportService,
	documentService *service.DocumentService,
	exportService *service.ExportService,
	ledgerNameService *service.LedgerNameService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		importService:     importService,
		documentService:   documentService,
		exportService:     exportService,
		ledgerNameService: ledgerNameService,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListImportsRequest represents query parameters for listing imports
type ListImportsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// UpdateLedgerNamesRequest carries a ledger-name changeset
type UpdateLedgerNamesRequest struct {
	Changes []entity.LedgerNameChange `json:"changes"`
}

// CreateLedgerNameRequest carries one new directory entry
type CreateLedgerNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// UploadImport handles POST /api/imports
func (h *Handlers) UploadImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Error("Missing upload file", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "missing upload file",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "failed to open upload",
		})
		return
	}
	defer file.Close()

	imp, err := h.importService.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.logger.Error("Failed to store import", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "failed to parse extract",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    imp,
	})
}

// ListImports handles GET /api/imports
func (h *Handlers) ListImports(c *gin.Context) {
	var req ListImportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	imports, err := h.importService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list imports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve imports",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    imports,
	})
}

// TransformImport handles POST /api/imports/:id/transform
func (h *Handlers) TransformImport(c *gin.Context) {
	importID := c.Param("id")

	doc, err := h.documentService.Transform(c.Request.Context(), importID)
	if err != nil {
		if errors.Is(err, port.ErrImportNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "import not found",
			})
			return
		}
		h.logger.Error("Failed to transform import", zap.String("import_id", importID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to transform import",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    doc,
	})
}

// GetDocument handles GET /api/documents/:id
func (h *Handlers) GetDocument(c *gin.Context) {
	importID := c.Param("id")

	doc, err := h.documentService.Get(c.Request.Context(), importID)
	if err != nil {
		if errors.Is(err, port.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "processed document not found",
			})
			return
		}
		h.logger.Error("Failed to get document", zap.String("import_id", importID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve document",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    doc,
	})
}

// UpdateLedgerNames handles PATCH /api/documents/:id/ledger-names
func (h *Handlers) UpdateLedgerNames(c *gin.Context) {
	importID := c.Param("id")

	var req UpdateLedgerNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	doc, err := h.documentService.ApplyLedgerNames(c.Request.Context(), importID, req.Changes)
	if err != nil {
		switch {
		case errors.Is(err, port.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "processed document not found",
			})
		case errors.Is(err, service.ErrStaleChangeset):
			c.JSON(http.StatusConflict, Response{
				Success: false,
				Error:   "changeset addresses a row that no longer exists",
			})
		default:
			h.logger.Error("Failed to apply ledger names", zap.String("import_id", importID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "failed to apply ledger names",
			})
		}
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    doc,
	})
}

// ExportDocument handles GET /api/documents/:id/export
func (h *Handlers) ExportDocument(c *gin.Context) {
	importID := c.Param("id")
	set := c.DefaultQuery("set", export.SetAll)

	content, fileName, err := h.exportService.Export(c.Request.Context(), importID, set)
	if err != nil {
		if errors.Is(err, port.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "processed document not found",
			})
			return
		}
		h.logger.Error("Failed to export document", zap.String("import_id", importID), zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "failed to derive export",
		})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// ListLedgerNames handles GET /api/ledger-names
func (h *Handlers) ListLedgerNames(c *gin.Context) {
	names, err := h.ledgerNameService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list ledger names", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve ledger names",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    names,
	})
}

// CreateLedgerName handles POST /api/ledger-names
func (h *Handlers) CreateLedgerName(c *gin.Context) {
	var req CreateLedgerNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	created, err := h.ledgerNameService.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyLedgerName) {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "ledger name must not be empty",
			})
			return
		}
		h.logger.Error("Failed to create ledger name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create ledger name",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    created,
	})
}
