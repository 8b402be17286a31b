package services

import (
	"vulpax/internal/models"
)

// MaxReplyDepth caps how deep the reply form is offered in the UI. The tree
// itself is built to any depth, only the affordance is hidden past this.
const MaxReplyDepth = 5

// CommentNode is one comment with its nested replies, ready for rendering.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode
}

// BuildCommentTree turns the flat, created_at-ascending comment rows of one
// application into a reply forest. A row whose ParentID is nil goes to the
// root list; a row whose ParentID resolves to another row in the input is
// appended to that parent's replies. A ParentID that does not resolve is
// treated as a root rather than an error, and duplicate ids index
// last-write-wins. Sibling order follows input order, so chronological.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	order := make([]*CommentNode, 0, len(comments))

	for i := range comments {
		node := &CommentNode{Comment: comments[i]}
		nodes[comments[i].ID] = node
		order = append(order, node)
	}

	roots := make([]*CommentNode, 0)
	for _, node := range order {
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// CountComments counts every node of the forest, replies included.
func CountComments(roots []*CommentNode) int {
	total := 0
	for _, node := range roots {
		total += 1 + CountComments(node.Replies)
	}
	return total
}

// AverageRating averages the ratings of root comments. Only roots with a
// positive rating enter the calculation; replies and unrated roots count
// neither in the numerator nor the denominator. Returns 0 when no root is
// rated, which the templates use to suppress the rating display.
func AverageRating(roots []*CommentNode) float64 {
	sum, rated := 0, 0
	for _, node := range roots {
		if node.Rating != nil && *node.Rating > 0 {
			sum += *node.Rating
			rated++
		}
	}
	if rated == 0 {
		return 0
	}
	return float64(sum) / float64(rated)
}
