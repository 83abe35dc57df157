package controller

import (
	"blackboard_backend/internal/service"
	"blackboard_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// AskRequest 助教提问。sessionId 为空时开启新会话
// swagger:model AskRequest
type AskRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary 向AI助教提问
// @Description 阻塞式问答，回答连同问题按会话存档
// @Tags 助教
// @Accept  json
// @Produce  json
// @Param   body body AskRequest true "问题"
// @Success 200 {object} util.Response{data=model.AssistantMessage}
// @Failure 502 {object} util.Response "AI 服务调用失败"
// @Router /api/assistant/ask [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ChatService.Ask(ctx.Request.Context(), claims.UserID, req.SessionID, req.Question)
	if err != nil {
		util.Error(ctx, 502, "AI助教暂时不可用，请稍后重试")
		return
	}
	util.Success(ctx, msg)
}

// AskStream godoc
// @Summary 向AI助教提问（流式）
// @Description SSE 逐段返回回答，最后一条事件为 done
// @Tags 助教
// @Accept  json
// @Produce  text/event-stream
// @Param   body body AskRequest true "问题"
// @Success 200 {string} string "SSE 数据流"
// @Router /api/assistant/ask-stream [post]
func (c *ChatController) AskStream(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	msg, err := c.ChatService.AskStream(ctx.Request.Context(), claims.UserID, req.SessionID, req.Question, func(chunk string) bool {
		ctx.SSEvent("message", chunk)
		ctx.Writer.Flush()
		return !ctx.IsAborted()
	})
	if err != nil {
		ctx.SSEvent("error", "AI助教暂时不可用，请稍后重试")
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("done", gin.H{"sessionId": msg.SessionID, "source": msg.Source})
	ctx.Writer.Flush()
}

// History godoc
// @Summary 会话历史
// @Tags 助教
// @Produce  json
// @Param   sessionId path string true "会话ID"
// @Param   limit query int false "返回条数，默认50"
// @Success 200 {object} util.Response{data=[]model.AssistantMessage}
// @Router /api/assistant/sessions/{sessionId} [get]
func (c *ChatController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	messages, err := c.ChatService.History(ctx.Param("sessionId"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// Sessions godoc
// @Summary 会话列表
// @Tags 助教
// @Produce  json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/assistant/sessions [get]
func (c *ChatController) Sessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.ChatService.Sessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
