package services

import (
	"testing"
	"time"
	"vulpax/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

// rows builds comments with ascending created_at in input order, the same
// shape the detail query hands to the builder.
func rows(comments ...models.Comment) []models.Comment {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range comments {
		comments[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	return comments
}

func TestBuildCommentTreeScenario(t *testing.T) {
	input := rows(
		models.Comment{ID: 1, Rating: intPtr(5)},
		models.Comment{ID: 2, ParentID: uintPtr(1)},
		models.Comment{ID: 3, Rating: intPtr(3)},
		models.Comment{ID: 4, ParentID: uintPtr(2)},
	)

	roots := BuildCommentTree(input)

	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(3), roots[1].ID)

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, uint(2), roots[0].Replies[0].ID)

	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(4), roots[0].Replies[0].Replies[0].ID)

	assert.Equal(t, 4, CountComments(roots))
	assert.Equal(t, 4.0, AverageRating(roots))
}

func TestBuildCommentTreeNoNodeDroppedOrDuplicated(t *testing.T) {
	input := rows(
		models.Comment{ID: 10},
		models.Comment{ID: 11, ParentID: uintPtr(10)},
		models.Comment{ID: 12, ParentID: uintPtr(11)},
		models.Comment{ID: 13, ParentID: uintPtr(10)},
		models.Comment{ID: 14},
		models.Comment{ID: 15, ParentID: uintPtr(14)},
	)

	roots := BuildCommentTree(input)

	assert.Equal(t, len(input), CountComments(roots))
}

func TestBuildCommentTreeDanglingParentBecomesRoot(t *testing.T) {
	// Parent 99 is not part of the input set; the reply is promoted to a
	// root instead of being dropped or rejected
	input := rows(
		models.Comment{ID: 1},
		models.Comment{ID: 2, ParentID: uintPtr(99)},
	)

	roots := BuildCommentTree(input)

	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)
	assert.Equal(t, 2, CountComments(roots))
}

func TestBuildCommentTreeSiblingOrderIsChronological(t *testing.T) {
	input := rows(
		models.Comment{ID: 1},
		models.Comment{ID: 2, ParentID: uintPtr(1)},
		models.Comment{ID: 3, ParentID: uintPtr(1)},
		models.Comment{ID: 4},
		models.Comment{ID: 5, ParentID: uintPtr(1)},
	)

	roots := BuildCommentTree(input)

	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(4), roots[1].ID)

	require.Len(t, roots[0].Replies, 3)
	assert.Equal(t, uint(2), roots[0].Replies[0].ID)
	assert.Equal(t, uint(3), roots[0].Replies[1].ID)
	assert.Equal(t, uint(5), roots[0].Replies[2].ID)
}

func TestAverageRatingIgnoresRepliesAndUnratedRoots(t *testing.T) {
	// Roots rated [5, nil, 3], one reply rated 4: the reply and the unrated
	// root must not influence the result
	input := rows(
		models.Comment{ID: 1, Rating: intPtr(5)},
		models.Comment{ID: 2},
		models.Comment{ID: 3, Rating: intPtr(3)},
		models.Comment{ID: 4, ParentID: uintPtr(1), Rating: intPtr(4)},
	)

	roots := BuildCommentTree(input)

	assert.Equal(t, 4.0, AverageRating(roots))
}

func TestAverageRatingZeroWhenNoRootRated(t *testing.T) {
	input := rows(
		models.Comment{ID: 1},
		models.Comment{ID: 2, ParentID: uintPtr(1), Rating: intPtr(5)},
	)

	roots := BuildCommentTree(input)

	assert.Equal(t, 0.0, AverageRating(roots))
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	roots := BuildCommentTree(nil)

	assert.Empty(t, roots)
	assert.Equal(t, 0, CountComments(roots))
	assert.Equal(t, 0.0, AverageRating(roots))
}
