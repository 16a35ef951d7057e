package models

import "time"

// Validate checks that both title and contents are present.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// Stamp fills the server-assigned timestamps of a new post. It is not a GORM
// hook; the SQL backends let GORM maintain the timestamps.
func (p *Post) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// Apply copies the editable fields of in onto the post and refreshes UpdatedAt.
func (p *Post) Apply(in *PostInput, now time.Time) {
	p.Title = in.Title
	p.Contents = in.Contents
	p.UpdatedAt = now
}
