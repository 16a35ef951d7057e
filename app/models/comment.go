package models

import "time"

// Validate checks that the comment text is present.
func (in *CommentInput) Validate() error {
	return validate.Struct(in)
}

// Stamp fills the server-assigned timestamps of a new comment.
func (c *Comment) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = c.CreatedAt
}
