package types

// --- Read tool inputs ---

type GetNoteInput struct {
	ID string `json:"id" jsonschema:"Note id to retrieve"`
}

type ListNotesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results. Default: 50"`
}

type SearchNotesInput struct {
	Query string `json:"query" jsonschema:"Search text matched against note titles and content"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results. Default: 20"`
}

type GetBacklinksInput struct {
	ID string `json:"id" jsonschema:"Note id to get inbound references for"`
}

// --- Write tool inputs ---

type CreateNoteToolInput struct {
	Title      string `json:"title" jsonschema:"Note title (required)"`
	Content    string `json:"content,omitempty" jsonschema:"Note body. May embed [[id]] reference markers"`
	TemplateID string `json:"templateId,omitempty" jsonschema:"Template id to copy the initial body from (used when content is empty)"`
}

type UpdateNoteToolInput struct {
	ID      string  `json:"id" jsonschema:"Note id to update"`
	Title   *string `json:"title,omitempty" jsonschema:"New title (omit to keep)"`
	Content *string `json:"content,omitempty" jsonschema:"New body, replaces the old one entirely (omit to keep)"`
}

type DeleteNoteToolInput struct {
	ID string `json:"id" jsonschema:"Note id to delete"`
}
