// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// Request DTOs. Create requests use plain fields; update requests use
// pointers so an absent field is left untouched.

type idRef struct {
	ID int64 `json:"id"`
}

type categoryCreateRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Slug  string `json:"slug" validate:"omitempty,max=100"`
	Color string `json:"color" validate:"omitempty,max=20"`
}

func (req *categoryCreateRequest) toModel() (*models.Category, error) {
	s := req.Slug
	if s == "" {
		s = slug.Generate(req.Name)
	}
	if s == "" {
		return nil, domainerrors.Validation("slug is required")
	}
	return &models.Category{Name: req.Name, Slug: s, Color: req.Color}, nil
}

type categoryUpdateRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=100"`
	Slug  *string `json:"slug" validate:"omitnil,min=1,max=100"`
	Color *string `json:"color" validate:"omitnil,max=20"`
}

func (req *categoryUpdateRequest) toPatch() models.CategoryPatch {
	return models.CategoryPatch{Name: req.Name, Slug: req.Slug, Color: req.Color}
}

type authorCreateRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Role   string `json:"role" validate:"max=100"`
	Bio    string `json:"bio" validate:"max=2000"`
	Avatar string `json:"avatar" validate:"max=500"`
}

func (req *authorCreateRequest) toModel() *models.Author {
	return &models.Author{Name: req.Name, Role: req.Role, Bio: req.Bio, Avatar: req.Avatar}
}

type authorUpdateRequest struct {
	Name   *string `json:"name" validate:"omitnil,min=1,max=100"`
	Role   *string `json:"role" validate:"omitnil,max=100"`
	Bio    *string `json:"bio" validate:"omitnil,max=2000"`
	Avatar *string `json:"avatar" validate:"omitnil,max=500"`
}

func (req *authorUpdateRequest) toPatch() models.AuthorPatch {
	return models.AuthorPatch{Name: req.Name, Role: req.Role, Bio: req.Bio, Avatar: req.Avatar}
}

// postCreateRequest accepts the category and author either as a nested
// object ({"category": {"id": 2}}) or as a flat id; the nested form wins.
type postCreateRequest struct {
	Title         string   `json:"title" validate:"required,max=300"`
	Slug          string   `json:"slug" validate:"omitempty,max=300"`
	Excerpt       string   `json:"excerpt" validate:"max=1000"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featured_image" validate:"max=500"`
	Category      *idRef   `json:"category"`
	CategoryID    int64    `json:"category_id" validate:"gte=0"`
	Author        *idRef   `json:"author"`
	AuthorID      int64    `json:"author_id" validate:"gte=0"`
	Tags          []string `json:"tags"`
	ReadTime      int      `json:"read_time" validate:"gte=0"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published"`
	Featured      bool     `json:"featured"`
}

// defaultCategoryID is used when a post is created without a category.
const defaultCategoryID int64 = 1

func (req *postCreateRequest) toModel() (*models.Post, error) {
	s := req.Slug
	if s == "" {
		s = slug.Generate(req.Title)
	}
	if s == "" {
		return nil, domainerrors.Validation("slug is required")
	}

	categoryID := req.CategoryID
	if req.Category != nil && req.Category.ID != 0 {
		categoryID = req.Category.ID
	}
	if categoryID == 0 {
		categoryID = defaultCategoryID
	}
	authorID := req.AuthorID
	if req.Author != nil && req.Author.ID != 0 {
		authorID = req.Author.ID
	}

	return &models.Post{
		Title:         req.Title,
		Slug:          s,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    categoryID,
		AuthorID:      authorID,
		Tags:          req.Tags,
		ReadTime:      req.ReadTime,
		Status:        models.PostStatus(req.Status),
		Featured:      req.Featured,
	}, nil
}

type postUpdateRequest struct {
	Title         *string   `json:"title" validate:"omitnil,min=1,max=300"`
	Slug          *string   `json:"slug" validate:"omitnil,min=1,max=300"`
	Excerpt       *string   `json:"excerpt" validate:"omitnil,max=1000"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featured_image" validate:"omitnil,max=500"`
	Category      *idRef    `json:"category"`
	CategoryID    *int64    `json:"category_id" validate:"omitnil,gt=0"`
	Author        *idRef    `json:"author"`
	AuthorID      *int64    `json:"author_id" validate:"omitnil,gt=0"`
	Tags          *[]string `json:"tags"`
	ReadTime      *int      `json:"read_time" validate:"omitnil,gte=0"`
	Status        *string   `json:"status" validate:"omitnil,oneof=draft published"`
	Featured      *bool     `json:"featured"`
}

func (req *postUpdateRequest) toPatch() models.PostPatch {
	p := models.PostPatch{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.CategoryID,
		AuthorID:      req.AuthorID,
		Tags:          req.Tags,
		ReadTime:      req.ReadTime,
		Featured:      req.Featured,
	}
	if req.Category != nil && req.Category.ID != 0 {
		p.CategoryID = &req.Category.ID
	}
	if req.Author != nil && req.Author.ID != 0 {
		p.AuthorID = &req.Author.ID
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		p.Status = &status
	}
	return p
}

type adCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Image       string `json:"image" validate:"max=500"`
	Link        string `json:"link" validate:"max=500"`
	LinkText    string `json:"link_text" validate:"max=100"`
	Active      *bool  `json:"active"`
	Position    string `json:"position" validate:"max=50"`
}

func (req *adCreateRequest) toModel() *models.Ad {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &models.Ad{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		LinkText:    req.LinkText,
		Active:      active,
		Position:    req.Position,
	}
}

type adUpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Image       *string `json:"image" validate:"omitnil,max=500"`
	Link        *string `json:"link" validate:"omitnil,max=500"`
	LinkText    *string `json:"link_text" validate:"omitnil,max=100"`
	Active      *bool   `json:"active"`
	Position    *string `json:"position" validate:"omitnil,min=1,max=50"`
}

func (req *adUpdateRequest) toPatch() models.AdPatch {
	return models.AdPatch{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		LinkText:    req.LinkText,
		Active:      req.Active,
		Position:    req.Position,
	}
}

type commentCreateRequest struct {
	PostID     int64  `json:"post_id" validate:"required,gt=0"`
	AuthorName string `json:"author_name" validate:"required,max=100"`
	Content    string `json:"content" validate:"required,max=5000"`
}

func (req *commentCreateRequest) normalize() {
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.Content = strings.TrimSpace(req.Content)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,maxbytes=72"`
}

type userCreateRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Avatar   string `json:"avatar" validate:"max=500"`
	Role     string `json:"role" validate:"omitempty,oneof=admin collaborator"`
}

func (req *userCreateRequest) normalize() {
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
}

type userUpdateRequest struct {
	Username *string `json:"username" validate:"omitnil,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Name     *string `json:"name" validate:"omitnil,min=1,max=100"`
	Avatar   *string `json:"avatar" validate:"omitnil,max=500"`
	Role     *string `json:"role" validate:"omitnil,oneof=admin collaborator"`
}

// toPatch builds the user patch. An empty password means "keep the current
// one". Role and username are only carried when allowIdentity is set.
func (req *userUpdateRequest) toPatch(allowIdentity bool) models.UserPatch {
	p := models.UserPatch{Name: req.Name, Avatar: req.Avatar}
	if req.Password != nil && *req.Password != "" {
		p.Password = req.Password
	}
	if allowIdentity {
		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			p.Username = &username
		}
		if req.Role != nil {
			role := models.Role(*req.Role)
			p.Role = &role
		}
	}
	return p
}
