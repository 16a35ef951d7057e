package controllers

import (
	"net/http"

	"blogspot/app/models"
	"blogspot/app/services"

	"go.uber.org/zap"
)

var (
	listPostsFailure = failure{storage: "The posts information could not be retrieved."}
	showPostFailure  = failure{storage: "The post information could not be retrieved."}

	createPostFailure = failure{
		invalid: ValidationErrorResponse{ErrorMessage: "Please provide title and contents for the post."},
		storage: "There was an error while saving the post to the database",
	}

	updatePostFailure = failure{
		invalid: MessageResponse{Message: "Please provide title and contents for the post."},
		storage: "The post information could not be modified.",
	}

	deletePostFailure = failure{storage: "The post could not be removed"}
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	log         *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log *zap.Logger) *PostController {
	return &PostController{postService: postService, log: log}
}

// Index lists every post.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, pc.log, err, listPostsFailure)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), pathID(r, "id"))
	if err != nil {
		sendError(w, r, pc.log, err, showPostFailure)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if !decodeJSON(w, r, &in) {
		sendJSON(w, http.StatusBadRequest, createPostFailure.invalid)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &in)
	if err != nil {
		sendError(w, r, pc.log, err, createPostFailure)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update replaces the title and contents of a post.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if !decodeJSON(w, r, &in) {
		sendJSON(w, http.StatusBadRequest, updatePostFailure.invalid)
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), pathID(r, "id"), &in)
	if err != nil {
		sendError(w, r, pc.log, err, updatePostFailure)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete removes a post and responds with the post as it was.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.DeletePost(r.Context(), pathID(r, "id"))
	if err != nil {
		sendError(w, r, pc.log, err, deletePostFailure)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
