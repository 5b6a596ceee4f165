package review

import (
	"strings"

	"roadready/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

var (
	ErrInvalidRating  = errs.Define(errs.KindInvalidInput, "rating must be between 1 and 5")
	ErrEmptyComment   = errs.Define(errs.KindInvalidInput, "comment cannot be empty")
	ErrCommentTooLong = errs.Define(errs.KindInvalidInput, "comment exceeds maximum length")
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Comment struct {
	text string
}

func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Comment{}, ErrEmptyComment
	}
	if len([]rune(t)) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }
