package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

//go:embed templates/project.html
var templatesFS embed.FS

var optionLabels = map[string]string{
	string(domain.BusinessEcommerce): "Ecommerce Store",
	string(domain.BusinessService):   "Service Business",
	string(domain.BuyerOperator):     "Owner-Operator",
	string(domain.BuyerInvestor):     "Passive Investor",
	string(domain.BuyerStrategic):    "Strategic Competitor",
	string(domain.AngleCashflow):     "Strong Cashflow",
	string(domain.AngleLifestyle):    "Work from Home",
	string(domain.AngleGrowth):       "Huge Growth Potential",
}

var projectPage = template.Must(template.New("project.html").Funcs(template.FuncMap{
	"label": func(v any) string {
		s := fmt.Sprint(v)
		if l, ok := optionLabels[s]; ok {
			return l
		}
		return s
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).ParseFS(templatesFS, "templates/project.html"))

// projectPage renders the project page. Authentication happens here rather
// than in middleware so each failure renders its own state; the store is not
// touched until the session is verified and the user resolved.
func (h *Handler) projectPage(c *gin.Context) {
	data := pageData{
		LoginPath:     h.loginPath,
		BusinessTypes: domain.BusinessTypes,
		BuyerTypes:    domain.BuyerTypes,
		Angles:        domain.Angles,
	}

	user, err := h.session.Authenticate(c)
	if err != nil {
		h.renderError(c, data, err)
		return
	}

	view, err := h.projects.View(c.Request.Context(), user.ID, c.Param("projectId"))
	if err != nil {
		h.renderError(c, data, err)
		return
	}

	data.State = "ok"
	data.Project = view.Project
	data.BrandKit = view.BrandKit
	data.Creatives = toCreativeResp(view.Creatives)
	data.Form = domain.BriefInput{
		BusinessType: domain.BusinessEcommerce,
		BuyerType:    domain.BuyerOperator,
		Angle:        domain.AngleCashflow,
	}
	if b := view.Brief; b != nil {
		data.Form = domain.BriefInput{BusinessType: b.BusinessType, Niche: b.Niche, BuyerType: b.BuyerType, Angle: b.Angle}
		data.SavedAt = &b.UpdatedAt
	}
	h.render(c, http.StatusOK, data)
}

func (h *Handler) renderError(c *gin.Context, data pageData, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.Unauthorized:
		data.State = "login"
	case apperr.UserNotProvisioned:
		data.State = "setup"
		data.Message = "User setup incomplete."
	case apperr.NotFoundOrForbidden:
		data.State = "not_found"
		data.Message = "Project not found or access denied."
	case apperr.Timeout:
		data.State = "error"
		data.Message = "The service is busy. Please try again."
		c.Header("Retry-After", "1")
	default:
		data.State = "error"
		data.Message = "Something went wrong."
		data.RequestID = c.GetString("request_id")
		slog.Error("project page failed", "request_id", data.RequestID, "error", err)
	}
	h.render(c, kind.HTTPStatus(), data)
}

func (h *Handler) render(c *gin.Context, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		slog.Error("render project page", "request_id", c.GetString("request_id"), "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
