package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

type PostController struct {
	postService *services.PostService
}

func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// GetPosts returns the social feed, optionally filtered by ?club_id=.
func (pc *PostController) GetPosts(c *gin.Context) {
	posts, err := pc.postService.Feed(c.Request.Context(), c.Query("club_id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	post, err := pc.postService.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}
