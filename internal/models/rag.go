package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RagDocument is a cached text summary of one entity, used as the
// retrieval corpus for the chat assistant. Documents are re-rendered by
// the reindex operation whenever the underlying data changes.
type RagDocument struct {
	DefaultModel
	SourceEntity string    `gorm:"uniqueIndex:rag_document_source"` // "project" or "user"
	SourceID     uuid.UUID `gorm:"uniqueIndex:rag_document_source"`
	Title        string
	Content      string
}

func (d *RagDocument) BeforeSave(_ *gorm.DB) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	return nil
}

// UpsertRagDocument replaces the cached summary for an entity, creating
// the document on first index.
func UpsertRagDocument(db *gorm.DB, doc RagDocument) (RagDocument, error) {
	var existing RagDocument
	err := db.First(&existing, &RagDocument{SourceEntity: doc.SourceEntity, SourceID: doc.SourceID}).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			err = db.Create(&doc).Error
			return doc, err
		}

		return RagDocument{}, err
	}

	existing.Title = doc.Title
	existing.Content = doc.Content
	err = db.Save(&existing).Error
	return existing, err
}
