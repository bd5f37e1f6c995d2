package models

// DocumentChunkModel is one retrievable unit of banking document content.
// Chunks are produced by the offline ingestion job and are immutable at
// serve time. Ingestion embeds every content variant; similarity ranking
// runs on the full-text embedding.
type DocumentChunkModel struct {
	Base
	Category         string `json:"category"           gorm:"index;not null"`
	SourceDocument   string `json:"source_document"    gorm:"not null"`
	Entity           string `json:"entity"             gorm:"not null"`
	Language         string `json:"language"`
	MainSectionTitle string `json:"main_section_title" gorm:"not null"`
	SubSectionTitle  string `json:"sub_section_title"`

	ContentFull    string `json:"content_full"    gorm:"type:longtext"`
	ContentSummary string `json:"content_summary" gorm:"type:text"`

	GeneratedLabels StringArray `json:"generated_labels" gorm:"type:json"`

	EmbeddingFull     Vector `json:"-" gorm:"type:longtext"`
	EmbeddingSummary  Vector `json:"-" gorm:"type:longtext"`
	EmbeddingRelevant Vector `json:"-" gorm:"type:longtext"`
}

func (DocumentChunkModel) TableName() string { return "document_chunks" }
