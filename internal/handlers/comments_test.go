// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
)

func TestCommentsList(t *testing.T) {
	store := newMemComments(3)
	store.items = []models.Comment{
		{ID: 1, PostID: 3, AuthorName: "Ana", Content: "Ótimo"},
		{ID: 2, PostID: 4, AuthorName: "Bia", Content: "Outro post"},
	}
	h := NewComments(store, testValidator())

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/comments?post_id=3", "", nil))
	assertStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]models.Comment](t, rec); len(got) != 1 || got[0].AuthorName != "Ana" {
		t.Errorf("unexpected comments: %+v", got)
	}

	for _, target := range []string{"/comments", "/comments?post_id=", "/comments?post_id=abc", "/comments?post_id=0"} {
		rec := httptest.NewRecorder()
		h.List(rec, newRequest(http.MethodGet, target, "", nil))
		assertStatus(t, rec, http.StatusBadRequest)
		if msg := errorMessage(t, rec); msg != "post_id is required" {
			t.Errorf("%s: error %q", target, msg)
		}
	}
}

func TestCommentsCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr string
	}{
		{"valid", `{"post_id":3,"author_name":"  João & Cia ","content":" Muito bom! "}`, http.StatusCreated, ""},
		{"missing everything", `{}`, http.StatusBadRequest, "author_name is required"},
		{"blank author", `{"post_id":3,"author_name":"   ","content":"x"}`, http.StatusBadRequest, "author_name is required"},
		{"missing content", `{"post_id":3,"author_name":"Ana"}`, http.StatusBadRequest, "content is required"},
		{"missing post", `{"author_name":"Ana","content":"x"}`, http.StatusBadRequest, "post_id is required"},
		{"unknown post", `{"post_id":99,"author_name":"Ana","content":"x"}`, http.StatusNotFound, "Post not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewComments(newMemComments(3), testValidator())

			rec := httptest.NewRecorder()
			h.Create(rec, newRequest(http.MethodPost, "/comments", tt.body, nil))
			assertStatus(t, rec, tt.status)

			if tt.wantErr != "" {
				if msg := errorMessage(t, rec); msg != tt.wantErr {
					t.Errorf("error: got %q, want %q", msg, tt.wantErr)
				}
				return
			}
			got := decodeBody[models.Comment](t, rec)
			if got.AuthorName != "João & Cia" || got.Content != "Muito bom!" {
				t.Errorf("fields should be trimmed: %+v", got)
			}
			if got.Avatar != "https://i.pravatar.cc/150?u=Jo%C3%A3o+%26+Cia" {
				t.Errorf("avatar: got %q", got.Avatar)
			}
		})
	}
}
