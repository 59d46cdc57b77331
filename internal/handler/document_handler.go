package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/extractor"
	"ledger-engine/internal/service"
	"ledger-engine/pkg/logger"
	"ledger-engine/pkg/response"
)

type DocumentHandler struct {
	service service.DocumentService
}

func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type ParseDocumentRequest struct {
	RawText string `json:"raw_text"`
	Feature string `json:"feature"`
}

// ParseDocument godoc
// @Summary Parse a financial document
// @Description Classify and parse raw document text or an uploaded file into normalized transactions
// @Tags documents
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body ParseDocumentRequest false "Raw document text and optional analysis feature"
// @Param file formData file false "Document file (PDF or plain text)"
// @Param feature formData string false "Analysis feature to run on the parsed transactions"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/documents/parse [post]
func (h *DocumentHandler) ParseDocument(c *gin.Context) {
	source, filename, feature, ok := h.resolveSource(c)
	if !ok {
		return
	}

	result, err := h.service.ProcessDocument(source, filename, feature)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Document processing failed")
		response.InternalError(c, "Document processing failed", err.Error())
		return
	}

	if !result.Success {
		response.Success(c, http.StatusOK, "Document could not be parsed", result)
		return
	}
	response.Success(c, http.StatusOK, "Document parsed successfully", result)
}

// resolveSource picks the text source for the request: an uploaded file
// when one is present, otherwise the raw_text field of the form or JSON
// body. Replies with a 400 when neither is supplied.
func (h *DocumentHandler) resolveSource(c *gin.Context) (extractor.Source, string, domain.Feature, bool) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		feature := domain.Feature(c.PostForm("feature"))

		file, err := c.FormFile("file")
		if err == nil {
			path := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
			if err := c.SaveUploadedFile(file, path); err != nil {
				logger.GetLogger().WithError(err).Error("Could not save uploaded file")
				response.InternalError(c, "Could not save uploaded file", err.Error())
				return nil, "", "", false
			}
			if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
				return tempFileSource{path: path}, file.Filename, feature, true
			}
			data, readErr := os.ReadFile(path)
			os.Remove(path)
			if readErr != nil {
				response.InternalError(c, "Could not read uploaded file", readErr.Error())
				return nil, "", "", false
			}
			return extractor.RawText(data), file.Filename, feature, true
		}

		if rawText := c.PostForm("raw_text"); rawText != "" {
			return extractor.RawText(rawText), "raw_text", feature, true
		}

		response.BadRequest(c, "No document content provided", "Supply a file upload or a raw_text field")
		return nil, "", "", false
	}

	var req ParseDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return nil, "", "", false
	}
	if req.RawText == "" {
		response.BadRequest(c, "No document content provided", "Supply a file upload or a raw_text field")
		return nil, "", "", false
	}
	return extractor.RawText(req.RawText), "raw_text", domain.Feature(req.Feature), true
}

// tempFileSource wraps a PDF extractor around an uploaded temp file and
// removes the file once read.
type tempFileSource struct {
	path string
}

func (t tempFileSource) Text() (string, error) {
	defer os.Remove(t.path)
	return extractor.PDFFile{Path: t.path}.Text()
}
