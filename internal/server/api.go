package server

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nao1215/corpusscope/internal/artifact"
	"github.com/nao1215/corpusscope/internal/chart"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/page"
)

// PageAPI serves rendered pages as JSON.
type PageAPI struct {
	Router fiber.Router
	Pages  *page.Renderer
}

// Register adds the JSON routes to the router.
func (api *PageAPI) Register() {
	api.Router.Get("/pages", func(c *fiber.Ctx) error {
		return c.JSON(page.Pages())
	})

	api.Router.Get("/pages/:name", func(c *fiber.Ctx) error {
		sel, err := selection(c)
		if err != nil {
			return err
		}
		p, err := api.Pages.Render(c.UserContext(), c.Params("name"), sel)
		if err != nil {
			return err
		}
		return c.JSON(p)
	})
}

// DashboardAPI serves the HTML pages and the images they embed.
type DashboardAPI struct {
	Router    fiber.Router
	Pages     *page.Renderer
	Charts    *chart.Renderer
	Artifacts *artifact.Store
}

// Register adds the dashboard routes to the router.
func (api *DashboardAPI) Register() {
	api.Router.Get("/pages/:name", func(c *fiber.Ctx) error {
		sel, err := formSelection(c)
		if err != nil {
			return err
		}
		p, err := api.Pages.Render(c.UserContext(), c.Params("name"), sel)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := renderHTML(&buf, p, string(c.Request().URI().QueryString())); err != nil {
			return err
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	api.Router.Get("/pages/:name/charts/:index", func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "chart index must be a non-negative integer")
		}
		sel, err := formSelection(c)
		if err != nil {
			return err
		}
		p, err := api.Pages.Render(c.UserContext(), c.Params("name"), sel)
		if err != nil {
			return err
		}

		charts := p.Charts()
		if index >= len(charts) {
			return fiber.NewError(fiber.StatusNotFound,
				fmt.Sprintf("page %s has %d charts", p.Name, len(charts)))
		}
		var buf bytes.Buffer
		if err := api.Charts.Render(charts[index], &buf); err != nil {
			if errors.Is(err, chart.ErrEmptyChart) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return err
		}
		c.Type("png")
		return c.Send(buf.Bytes())
	})

	api.Router.Get("/wordclouds/:domain", func(c *fiber.Ctx) error {
		d, err := model.ParseDomain(c.Params("domain"))
		if err != nil {
			return err
		}
		path, err := api.Artifacts.WordCloudPath(d)
		if err != nil {
			if errors.Is(err, model.ErrArtifactMissing) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return err
		}
		return c.SendFile(path)
	})
}
