package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pacearena-api/middleware"
	"pacearena-api/models"
	"pacearena-api/services"
	"pacearena-api/utils"
)

// SocialController serves likes and comments for both events and posts.
type SocialController struct {
	socialService *services.SocialService
}

func NewSocialController(socialService *services.SocialService) *SocialController {
	return &SocialController{socialService: socialService}
}

func eventTarget(c *gin.Context) models.Target { return models.EventTarget(c.Param("id")) }
func postTarget(c *gin.Context) models.Target  { return models.PostTarget(c.Param("id")) }

func (sc *SocialController) LikeEvent(c *gin.Context) {
	sc.applyLike(c, eventTarget(c), models.LikeAdd)
}

func (sc *SocialController) UnlikeEvent(c *gin.Context) {
	sc.applyLike(c, eventTarget(c), models.LikeRemove)
}

func (sc *SocialController) LikePost(c *gin.Context) {
	sc.applyLike(c, postTarget(c), models.LikeAdd)
}

func (sc *SocialController) UnlikePost(c *gin.Context) {
	sc.applyLike(c, postTarget(c), models.LikeRemove)
}

func (sc *SocialController) GetEventComments(c *gin.Context) { sc.listComments(c, eventTarget(c)) }
func (sc *SocialController) GetPostComments(c *gin.Context)  { sc.listComments(c, postTarget(c)) }
func (sc *SocialController) AddEventComment(c *gin.Context)  { sc.addComment(c, eventTarget(c)) }
func (sc *SocialController) AddPostComment(c *gin.Context)   { sc.addComment(c, postTarget(c)) }

func (sc *SocialController) GetEventLikes(c *gin.Context) {
	ids, err := sc.socialService.LikeUserIDs(c.Request.Context(), eventTarget(c))
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch likes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_ids": ids, "count": len(ids)})
}

func (sc *SocialController) applyLike(c *gin.Context, target models.Target, action models.LikeAction) {
	summary, err := sc.socialService.ApplyLike(c.Request.Context(), c.GetString(middleware.ContextUserID), target, action)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to update like")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (sc *SocialController) listComments(c *gin.Context, target models.Target) {
	comments, err := sc.socialService.ListComments(c.Request.Context(), target)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (sc *SocialController) addComment(c *gin.Context, target models.Target) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	comment, err := sc.socialService.AddComment(c.Request.Context(), c.GetString(middleware.ContextUserID), target, req.Content)
	if err != nil {
		utils.SendServiceError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}
