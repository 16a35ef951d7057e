package controllers

import (
	"net/http"

	"blogspot/app/models"
	"blogspot/app/services"

	"go.uber.org/zap"
)

var (
	listCommentsFailure = failure{storage: "The comments information could not be retrieved."}

	createCommentFailure = failure{
		invalid: ValidationErrorResponse{ErrorMessage: "Please provide text for the comment."},
		storage: "There was an error while saving the comment to the database",
	}
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	log            *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, log *zap.Logger) *CommentController {
	return &CommentController{commentService: commentService, log: log}
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListPostComments(r.Context(), pathID(r, "id"))
	if err != nil {
		sendError(w, r, cc.log, err, listCommentsFailure)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if !decodeJSON(w, r, &in) {
		sendJSON(w, http.StatusBadRequest, createCommentFailure.invalid)
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), pathID(r, "id"), &in)
	if err != nil {
		sendError(w, r, cc.log, err, createCommentFailure)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
