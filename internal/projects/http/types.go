package http

import (
	"html/template"
	"time"

	"github.com/adcraft-app/adcraft-backend/internal/auth/middleware"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
	"github.com/adcraft-app/adcraft-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	projects  *service.ProjectService
	briefs    *service.BriefService
	session   *middleware.Session
	loginPath string
	page      *template.Template
}

func New(projects *service.ProjectService, briefs *service.BriefService, session *middleware.Session, loginPath string) *Handler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Handler{
		projects:  projects,
		briefs:    briefs,
		session:   session,
		loginPath: loginPath,
		page:      projectPage,
	}
}

type createReq struct {
	Name string `json:"name"`
}

type creativeResp struct {
	domain.Creative
	ImageSrc string `json:"imageUrl,omitempty"`
}

func toCreativeResp(items []domain.Creative) []creativeResp {
	out := make([]creativeResp, 0, len(items))
	for _, c := range items {
		out = append(out, creativeResp{Creative: c, ImageSrc: c.ImageURL()})
	}
	return out
}

type projectViewResp struct {
	Project   domain.Project   `json:"project"`
	BrandKit  *domain.BrandKit `json:"brandKit"`
	Brief     *domain.Brief    `json:"brief"`
	Creatives []creativeResp   `json:"creatives"`
}

func toProjectViewResp(v *domain.ProjectView) projectViewResp {
	return projectViewResp{
		Project:   v.Project,
		BrandKit:  v.BrandKit,
		Brief:     v.Brief,
		Creatives: toCreativeResp(v.Creatives),
	}
}

// pageData feeds templates/project.html.
type pageData struct {
	State     string
	Message   string
	LoginPath string
	RequestID string

	Project   domain.Project
	BrandKit  *domain.BrandKit
	Form      domain.BriefInput
	SavedAt   *time.Time
	Creatives []creativeResp

	BusinessTypes []domain.BusinessType
	BuyerTypes    []domain.BuyerType
	Angles        []domain.Angle
}
