package models

import (
	"encoding/json"
	"time"
)

// DefaultNoteTag is applied when a note is created without a tag.
const DefaultNoteTag = "General"

// Note is a titled free-text note.
type Note struct {
	Record
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// Todo is a task with a completion flag.
type Todo struct {
	Record
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

// WebSearch is a saved web-search result. Its creation time is written as
// "timestamp" rather than "date".
type WebSearch struct {
	Record
	Title         string `json:"title"`
	Content       string `json:"content"`
	ReferenceLink string `json:"reference_link"`
}

type webSearchFields WebSearch

// webSearchJSON hides the promoted "date" key behind a nil pointer at a
// shallower depth and carries the creation time as "timestamp".
type webSearchJSON struct {
	webSearchFields
	Date      *time.Time `json:"date,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func (w WebSearch) MarshalJSON() ([]byte, error) {
	return json.Marshal(webSearchJSON{webSearchFields: webSearchFields(w), Timestamp: w.CreatedAt})
}

func (w *WebSearch) UnmarshalJSON(data []byte) error {
	var v webSearchJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*w = WebSearch(v.webSearchFields)
	switch {
	case !v.Timestamp.IsZero():
		w.CreatedAt = v.Timestamp
	case v.Date != nil:
		w.CreatedAt = *v.Date
	}
	return nil
}

// NoteInput is the request body for creating a note.
type NoteInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
	Tag         string `json:"tag"`
}

// ToModel builds an unsaved note from the input.
func (in NoteInput) ToModel() *Note {
	tag := in.Tag
	if tag == "" {
		tag = DefaultNoteTag
	}
	return &Note{Title: in.Title, Description: in.Description, Tag: tag}
}

// NotePatch is the request body for a partial note update. Nil fields are
// left unchanged.
type NotePatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5"`
	Tag         *string `json:"tag,omitempty"`
}

// Apply copies the provided fields onto n. An empty tag resets it to
// DefaultNoteTag.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Tag != nil {
		n.Tag = *p.Tag
		if n.Tag == "" {
			n.Tag = DefaultNoteTag
		}
	}
}

// TodoInput is the request body for creating a todo.
type TodoInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
	IsCompleted bool   `json:"isCompleted"`
}

// ToModel builds an unsaved todo from the input.
func (in TodoInput) ToModel() *Todo {
	return &Todo{Title: in.Title, Description: in.Description, IsCompleted: in.IsCompleted}
}

// TodoPatch is the request body for a partial todo update.
type TodoPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Apply copies the provided fields onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
}

// WebSearchInput is the request body for saving a web-search result.
type WebSearchInput struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	ReferenceLink string `json:"reference_link" validate:"required,url"`
}

// ToModel builds an unsaved web-search entry from the input.
func (in WebSearchInput) ToModel() *WebSearch {
	return &WebSearch{Title: in.Title, Content: in.Content, ReferenceLink: in.ReferenceLink}
}

// WebSearchPatch is the request body for a partial web-search update.
type WebSearchPatch struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Content       *string `json:"content,omitempty" validate:"omitempty,min=1"`
	ReferenceLink *string `json:"reference_link,omitempty" validate:"omitempty,url"`
}

// Apply copies the provided fields onto w.
func (p WebSearchPatch) Apply(w *WebSearch) {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Content != nil {
		w.Content = *p.Content
	}
	if p.ReferenceLink != nil {
		w.ReferenceLink = *p.ReferenceLink
	}
}

// WebSearchExtractInput is the request body for saving a page summary:
// the page at URL is fetched and its opening paragraphs become the content.
type WebSearchExtractInput struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,http_url"`
}

// RegisterInput is the request body for registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	AuthToken string `json:"authToken"`
}
