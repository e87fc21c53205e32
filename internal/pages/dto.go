package pages

import (
	"time"

	"github.com/google/uuid"

	"github.com/hkfashion/storefront-backend/pkg/db/models"
)

// SummaryView lists a page without its body, for navigation menus.
type SummaryView struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// View is a full page payload.
type View struct {
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ContactInput carries the contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactReceipt acknowledges a stored submission.
type ContactReceipt struct {
	ID          uuid.UUID `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func toSummaryView(page models.Page) SummaryView {
	return SummaryView{Title: page.Title, Slug: page.Slug}
}

func toView(page *models.Page) *View {
	return &View{
		Title:           page.Title,
		Slug:            page.Slug,
		Content:         page.Content,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		UpdatedAt:       page.UpdatedAt,
	}
}
