package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	"github.com/noah-isme/ams-api/internal/service"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
	"github.com/noah-isme/ams-api/pkg/response"
)

const rosterFormField = "file"

type promotionRunner interface {
	Run(ctx context.Context) (models.PromotionSummary, error)
}

type rosterUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (int, error)
}

type archivedLister interface {
	List(ctx context.Context) ([]models.ArchivedStudent, error)
}

// AdminHandler groups the administrator endpoints.
type AdminHandler struct {
	promotion     promotionRunner
	roster        rosterUploader
	archive       archivedLister
	maxUploadSize int64
}

// NewAdminHandler constructs an AdminHandler. maxUploadSize <= 0 disables the size check.
func NewAdminHandler(promotion promotionRunner, roster rosterUploader, archive archivedLister, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{promotion: promotion, roster: roster, archive: archive, maxUploadSize: maxUploadSize}
}

// YearlyUpdate godoc
// @Summary Promote or archive every student
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.YearlyUpdateResponse
// @Failure 500 {object} response.ErrorBody
// @Router /yearly-update [post]
func (h *AdminHandler) YearlyUpdate(c *gin.Context) {
	summary, err := h.promotion.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.YearlyUpdateResponse{
		Message:   service.MsgYearlyUpdateDone,
		Processed: summary.Processed,
		Promoted:  summary.Promoted,
		Archived:  summary.Archived,
		Skipped:   summary.Skipped,
	})
}

// UploadStudents godoc
// @Summary Bulk insert students from a JSON file
// @Description The whole file is validated before anything is inserted.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JSON array of students"
// @Success 200 {object} dto.RosterUploadResponse
// @Failure 400 {object} response.ErrorBody
// @Router /upload-students [post]
func (h *AdminHandler) UploadStudents(c *gin.Context) {
	header, err := c.FormFile(rosterFormField)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, service.MsgNoFileUploaded))
		return
	}
	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", h.maxUploadSize)))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read uploaded file"))
		return
	}
	defer file.Close()

	data, err := readAllLimited(file, h.maxUploadSize)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read uploaded file"))
		return
	}

	n, err := h.roster.Upload(c.Request.Context(), header.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RosterUploadResponse{Message: service.MsgStudentsAdded, Inserted: n})
}

// ArchivedStudents godoc
// @Summary List students archived by the yearly update
// @Tags Admin
// @Produce json
// @Success 200 {array} models.ArchivedStudent
// @Router /archived-students [get]
func (h *AdminHandler) ArchivedStudents(c *gin.Context) {
	rows, err := h.archive.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}
