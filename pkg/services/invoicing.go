package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sequencer hands out invoice numbers. Each successful call returns a
// number no other call has returned.
type Sequencer interface {
	Next(ctx context.Context) (string, error)
}

// DocumentStore keeps rendered invoice documents.
type DocumentStore interface {
	// Upload stores a PDF under name and returns its stored metadata.
	Upload(ctx context.Context, name string, pdf []byte) (*StoredDocument, error)

	// List returns one page of stored documents, newest first.
	List(ctx context.Context, q ListQuery) (*ListResult, error)

	// Get returns metadata for a single document.
	Get(ctx context.Context, id string) (*StoredDocument, error)

	// Delete removes a document permanently.
	Delete(ctx context.Context, id string) error
}

// InvoiceRegister records one line per issued invoice.
type InvoiceRegister interface {
	Append(ctx context.Context, entry RegisterEntry) error
}

// StoredDocument describes a document held by a DocumentStore.
type StoredDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
	ViewLink    string    `json:"view_link"`
	DownloadURL string    `json:"download_url"`
}

// ListQuery selects a page of stored documents.
type ListQuery struct {
	Search    string // name substring
	PageSize  int64
	PageToken string
}

// ListResult is one page of stored documents.
type ListResult struct {
	Documents     []StoredDocument `json:"documents"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

// RegisterEntry is the register row for an issued invoice.
type RegisterEntry struct {
	InvoiceNumber string
	IssuedAt      time.Time
	Customer      string
	Company       string
	VehicleNo     string
	TaxRegime     string
	Taxable       decimal.Decimal
	Tax           decimal.Decimal
	NonTaxable    decimal.Decimal
	Discount      decimal.Decimal
	Advance       decimal.Decimal
	GrandTotal    decimal.Decimal
	FileName      string
	DocumentID    string
	DocumentLink  string
}
