package model

// Document is a cataloged safety data sheet (one per chemical or product).
// ID is assigned by the caller (e.g. "M0001") and never changes after creation.
type Document struct {
	ID                             string  `json:"id"`
	Title                          string  `json:"title"`
	Usage                          *string `json:"usage"`
	FilePath                       *string `json:"filePath"`
	AppliesToChemicalControlAct    bool    `json:"appliesToChemicalControlAct"`
	AppliesToOccupationalSafetyAct bool    `json:"appliesToOccupationalSafetyAct"`
}

// HasFile reports whether the document points at a primary file in the blob store.
func (d Document) HasFile() bool {
	return d.FilePath != nil && *d.FilePath != ""
}

// DocumentPatch carries the fields of a partial update. Nil fields are left untouched.
type DocumentPatch struct {
	Title                          *string `json:"title"`
	Usage                          *string `json:"usage"`
	FilePath                       *string `json:"filePath"`
	AppliesToChemicalControlAct    *bool   `json:"appliesToChemicalControlAct"`
	AppliesToOccupationalSafetyAct *bool   `json:"appliesToOccupationalSafetyAct"`
}

// DocumentWithAttachments is a list item of the detailed document listing.
type DocumentWithAttachments struct {
	Document
	Attachments []AttachmentRef `json:"attachments"`
}

// DocumentDetail is a document together with its attachments, most recently linked first.
type DocumentDetail struct {
	Document
	Attachments []LinkedAttachment `json:"attachments"`
}

// DocumentAttachmentRow is one row of the document/attachment outer join.
// Attachment is nil for documents without any linked attachment.
type DocumentAttachmentRow struct {
	Document   Document
	Attachment *AttachmentRef
}

// Options holds the distinct values used to populate client-side filter controls.
type Options struct {
	Usages     []string `json:"usages"`
	Locations  []string `json:"locations"`
	Warnings   []string `json:"warnings"`
	Protective []string `json:"protective"`
}
