package people

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/auth"
)

// Controller exposes roster CRUD plus search. The roster surface carries no
// gates, matching the service's split between public roster access and the
// gated administrative layer.
type Controller struct {
	Repo   People
	Logger auth.Logger
}

// NewController wires the controller's collaborators.
func NewController(repo People, logger auth.Logger) *Controller {
	return &Controller{Repo: repo, Logger: logger}
}

// RegisterRoutes mounts the /users surface. The search route is registered
// before the :id routes so "search" never binds as an id parameter.
func (p *Controller) RegisterRoutes(app fiber.Router) {
	grp := app.Group("/users")

	grp.Post("/", p.CreateMany)
	grp.Get("/", p.List)
	grp.Get("/search", p.Search)
	grp.Get("/:id", p.Get)
	grp.Put("/:id", p.Update)
	grp.Delete("/:id", p.Delete)
}

// CreateMany bulk-inserts roster records.
func (p *Controller) CreateMany(c *fiber.Ctx) error {
	var records []*Person
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	inserted, err := p.Repo.InsertMany(c.UserContext(), records)
	if err != nil {
		p.Logger.Error("failed to insert people", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to insert records"})
	}

	return c.Status(fiber.StatusCreated).JSON(inserted)
}

// List returns the whole roster.
func (p *Controller) List(c *fiber.Ctx) error {
	records, err := p.Repo.List(c.UserContext())
	if err != nil {
		p.Logger.Error("failed to list people", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to list records"})
	}
	return c.JSON(records)
}

// Search matches a case-insensitive substring over name and mobile.
func (p *Controller) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing query parameter q"})
	}

	records, err := p.Repo.Search(c.UserContext(), query)
	if err != nil {
		p.Logger.Error("failed to search people", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to search records"})
	}
	return c.JSON(records)
}

// Get returns one record by id.
func (p *Controller) Get(c *fiber.Ctx) error {
	record, err := p.Repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if IsPersonNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		p.Logger.Error("failed to get person", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to get record"})
	}
	return c.JSON(record)
}

// Update replaces a record by id.
func (p *Controller) Update(c *fiber.Ctx) error {
	record := new(Person)
	if err := c.BodyParser(record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := record.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := p.Repo.UpdateByID(c.UserContext(), c.Params("id"), record)
	if err != nil {
		if IsPersonNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		p.Logger.Error("failed to update person", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to update record"})
	}
	return c.JSON(updated)
}

// Delete removes a record by id.
func (p *Controller) Delete(c *fiber.Ctx) error {
	removed, err := p.Repo.DeleteByID(c.UserContext(), c.Params("id"))
	if err != nil {
		p.Logger.Error("failed to delete person", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to delete record"})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
