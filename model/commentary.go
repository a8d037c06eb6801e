package model

import (
	"time"
)

// Commentary kinds. The source pages sometimes split a player's write-up
// into the original analysis and a later playoff/update review.
const (
	CommentaryAnalysis = "analysis"
	CommentaryUpdate   = "update"
)

// Commentary is one author-attributed block of analysis for a player within
// an edition. Body is markdown.
type Commentary struct {
	PlayerID  string
	EditionID int32
	Author    string
	Kind      string // CommentaryAnalysis or CommentaryUpdate
	Body      string
	Created   time.Time
}
