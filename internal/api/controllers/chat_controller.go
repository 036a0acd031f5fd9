package controllers

import (
	"io"

	"yatrojana/internal/models/request_models"
	"yatrojana/internal/services"
	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// CreateSession godoc
// @Summary Open a chat session seeded with the greeting
// @Tags chat
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/chat/sessions [post]
func (ch *ChatController) CreateSession(c *gin.Context) {
	session := ch.chatService.CreateSession(c.Request.Context())
	utils.RespondSuccess(c, session, "Chat session created")
}

func (ch *ChatController) GetSession(c *gin.Context) {
	session, err := ch.chatService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, session, "")
}

func (ch *ChatController) DeleteSession(c *gin.Context) {
	if err := ch.chatService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Chat session closed")
}

// SendMessage godoc
// @Summary Send a message and stream the cumulative reply
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param id path string true "Session ID"
// @Param request body request_models.ChatMessageRequest true "Message"
// @Router /api/chat/sessions/{id}/messages [post]
func (ch *ChatController) SendMessage(c *gin.Context) {
	var req request_models.ChatMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := ch.chatService.Send(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer reply.Close()

	prepareSSE(c)
	c.Stream(func(w io.Writer) bool {
		chunk, ok := reply.Next()
		if !ok {
			c.SSEvent("done", gin.H{"session_id": c.Param("id")})
			return false
		}
		c.SSEvent("reply", chunk)
		return true
	})
}
