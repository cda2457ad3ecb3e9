package model

import (
	"time"

	"github.com/google/uuid"
)

// Stack is one entry of the technology taxonomy referenced by projects.
type Stack struct {
	ID        uuid.UUID `json:"id"`
	Title     Name      `json:"title"`
	Slug      Name      `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewStack struct {
	Title          Name
	Slug           Name
	CreatedBy      uuid.UUID
	CreatedByName  Name
	CreatedByEmail Email
}

type StackUpdate struct {
	StackID       uuid.UUID
	Slug          *Name
	EditedBy      uuid.UUID
	EditedByName  Name
	EditedByEmail Email
}

// Blog is a published blog post; Image/ImageID point at the uploaded
// cover image in object storage.
type Blog struct {
	ID          uuid.UUID `json:"id"`
	Title       Name      `json:"title"`
	Description Name      `json:"description"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	ImageID     string    `json:"image_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewBlog struct {
	Title          Name
	Description    Name
	Content        string
	Image          string
	ImageID        string
	CreatedBy      uuid.UUID
	CreatedByName  Name
	CreatedByEmail Email
}

type BlogUpdate struct {
	BlogID        uuid.UUID
	Description   *Name
	Content       *string
	Image         *string
	ImageID       *string
	EditedBy      uuid.UUID
	EditedByName  Name
	EditedByEmail Email
}

// Project is a portfolio project bound to a stack taxonomy entry.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       Name      `json:"title"`
	Description Name      `json:"description"`
	Stack       Name      `json:"stack"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	ImageID     string    `json:"image_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewProject struct {
	Title          Name
	Description    Name
	Stack          Name
	Content        string
	Image          string
	ImageID        string
	CreatedBy      uuid.UUID
	CreatedByName  Name
	CreatedByEmail Email
}

type ProjectUpdate struct {
	ProjectID     uuid.UUID
	Description   *Name
	Stack         *Name
	Content       *string
	Image         *string
	ImageID       *string
	EditedBy      uuid.UUID
	EditedByName  Name
	EditedByEmail Email
}
