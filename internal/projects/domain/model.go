package domain

import (
	"errors"
	"net/url"
	"time"
)

// ErrNotFound is returned for projects that are absent or owned by someone
// else. Callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// Project is the authorization root: brand kit, brief and creatives are
// only reachable through a project owned by the caller.
type Project struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// BrandKit is produced by the website scanner and only read here.
type BrandKit struct {
	ProjectID  string    `json:"projectId"`
	WebsiteURL string    `json:"websiteUrl"`
	BrandName  *string   `json:"brandName,omitempty"`
	Tone       *string   `json:"tone,omitempty"`
	Colors     []string  `json:"colors"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Creative struct {
	ID                      string    `db:"id" json:"id"`
	ProjectID               string    `db:"project_id" json:"projectId"`
	Name                    string    `db:"name" json:"name"`
	PlacementSize           string    `db:"placement_size" json:"placementSize"`
	SelectedImageObjectPath *string   `db:"selected_image_object_path" json:"selectedImageObjectPath,omitempty"`
	CreatedAt               time.Time `db:"created_at" json:"createdAt"`
}

// ImageURL links the selected image through the image proxy, or returns ""
// when no image has been picked.
func (c Creative) ImageURL() string {
	if c.SelectedImageObjectPath == nil || *c.SelectedImageObjectPath == "" {
		return ""
	}
	return "/proxy/image?url=" + url.QueryEscape(*c.SelectedImageObjectPath)
}

// ProjectView is everything the project page shows. BrandKit and Brief are
// nil until they exist; Creatives are newest first.
type ProjectView struct {
	Project   Project    `json:"project"`
	BrandKit  *BrandKit  `json:"brandKit"`
	Brief     *Brief     `json:"brief"`
	Creatives []Creative `json:"creatives"`
}
