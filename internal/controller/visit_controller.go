package controller

import (
	"vetvox-be/internal/dto"
	"vetvox-be/internal/pkg/serverutils"
	"vetvox-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVisitController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateNotes(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
}

type visitController struct {
	visitService service.IVisitService
}

func NewVisitController(visitService service.IVisitService) IVisitController {
	return &visitController{
		visitService: visitService,
	}
}

func (c *visitController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/visits")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Post("/analyze", c.Analyze)
	h.Patch("", c.UpdateNotes)
}

func (c *visitController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateVisitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.visitService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create visit", res))
}

func (c *visitController) List(ctx *fiber.Ctx) error {
	res, err := c.visitService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list visits", res))
}

func (c *visitController) UpdateNotes(ctx *fiber.Ctx) error {
	var req dto.UpdateVisitNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.visitService.UpdateNotes(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update visit notes", res))
}

func (c *visitController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeVisitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.visitService.Analyze(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze visit notes", res))
}
