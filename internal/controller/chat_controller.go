package controller

import (
	"ai-legalaid-be/internal/dto"
	"ai-legalaid-be/internal/pkg/serverutils"
	"ai-legalaid-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	chat := r.Group("/chat/v1")
	chat.Post("", c.Chat)
}

// Chat handles one conversational turn. The response body is flat so the
// companion page can read reply/emotion/legalSummary directly.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Field: "Message", Message: "Message required"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
