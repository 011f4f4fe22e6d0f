package v1

import (
	"bytes"
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/export"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportQuery struct {
	Format string `form:"format"` // json or xlsx. Defaults to json.
}

type ExportResponse struct {
	Error        *string      `json:"error" example:"the format parameter must be one of json, xlsx"` // The error, if any occurred
	Data         *export.Data `json:"data"`                                                           // The exported data
	CreationTime time.Time    `json:"creationTime"`                                                   // Time the export was created
}

// RegisterExportRoutes registers the routes for the export with
// the RouterGroup that is passed.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsExport)
	r.GET("", co.GetExport)
}

// OptionsExport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Export
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/export [options]
func (co Controller) OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExport exports all data of the user
//
//	@Summary		Export
//	@Description	Exports the balance, all transactions, budgets and pots of the user as JSON or as an Excel workbook
//	@Tags			Export
//	@Produce		json
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200		{object}	ExportResponse
//	@Failure		400		{object}	ExportResponse
//	@Failure		500		{object}	ExportResponse
//	@Param			format	query		string	false	"json or xlsx. Defaults to json."
//	@Security		BearerAuth
//	@Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	var query ExportQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), ExportResponse{Error: &e})
		return
	}

	if query.Format != "" && query.Format != "json" && query.Format != "xlsx" {
		e := errExportFormat.Error()
		c.JSON(http.StatusBadRequest, ExportResponse{Error: &e})
		return
	}

	data, err := export.Collect(c.Request.Context(), co.Store, owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExportResponse{Error: &e})
		return
	}

	now := co.now().UTC()
	if query.Format != "xlsx" {
		c.JSON(http.StatusOK, ExportResponse{Data: &data, CreationTime: now})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, data); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, ExportResponse{Error: &e})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="finance-export-`+now.Format("2006-01-02")+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
