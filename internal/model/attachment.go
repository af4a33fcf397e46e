package model

import (
	"strings"
	"time"
)

// AttachmentType classifies an attachment image.
type AttachmentType int

const (
	AttachmentProtectiveEquipment AttachmentType = 0
	AttachmentLocation            AttachmentType = 1
	AttachmentWarningSymbol       AttachmentType = 2
)

// Valid reports whether t is one of the known attachment types.
func (t AttachmentType) Valid() bool {
	return t >= AttachmentProtectiveEquipment && t <= AttachmentWarningSymbol
}

func (t AttachmentType) String() string {
	switch t {
	case AttachmentProtectiveEquipment:
		return "PROTECTIVE_EQUIPMENT"
	case AttachmentLocation:
		return "LOCATION"
	case AttachmentWarningSymbol:
		return "WARNING_SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// BrokenFilePath is the literal some legacy rows carry instead of NULL.
const BrokenFilePath = "None"

// placeholderToken marks file names whose non-ASCII characters were replaced
// by underscores during an earlier import and no longer resolve.
const placeholderToken = "____"

// Attachment is an image (protective equipment, location tag or warning symbol)
// that can be linked to any number of documents.
type Attachment struct {
	ID        int64          `json:"aid"`
	Title     string         `json:"title"`
	Type      AttachmentType `json:"type"`
	FilePath  *string        `json:"filePath"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ResolvableFilePath returns the blob path, or nil when the path is missing or broken.
func (a Attachment) ResolvableFilePath() *string {
	return ResolvablePath(a.FilePath)
}

// Ref returns the compact form used inside document listings.
func (a Attachment) Ref() AttachmentRef {
	return AttachmentRef{ID: a.ID, Title: a.Title, Type: a.Type, FilePath: a.ResolvableFilePath()}
}

// ResolvablePath filters out empty, "None" and placeholder paths.
func ResolvablePath(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" || s == BrokenFilePath || strings.Contains(s, placeholderToken) {
		return nil
	}
	return &s
}

// AttachmentRef is the nested attachment shape of the detailed listing.
type AttachmentRef struct {
	ID       int64          `json:"aid"`
	Title    string         `json:"title"`
	Type     AttachmentType `json:"type"`
	FilePath *string        `json:"filePath"`
}

// LinkedAttachment is an attachment as seen from one document, with the time it was linked.
type LinkedAttachment struct {
	Attachment
	LinkedAt time.Time `json:"linkedAt"`
}

// AttachmentPatch carries the fields of a partial attachment update.
type AttachmentPatch struct {
	Title    *string         `json:"title"`
	Type     *AttachmentType `json:"type"`
	FilePath *string         `json:"filePath"`
}

// AttachmentFilter narrows an attachment listing. Zero values mean "any".
type AttachmentFilter struct {
	DocumentID string
	Type       *AttachmentType
}
