package handlers

import (
	"encoding/json"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/templates"
)

// HandleHome renders the public landing page from the stored content
// sections. Missing or broken sections render as empty blocks, never as an
// error page.
func HandleHome(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, meta := buildHomeData(app)
		page := templates.Layout(meta, templates.HomePage(data))
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return page.Render(e.Request.Context(), e.Response)
	}
}

func buildHomeData(app *pocketbase.PocketBase) (templates.HomeData, templates.PageMeta) {
	var data templates.HomeData
	meta := templates.PageMeta{Title: "СистемаКрафт"}

	var company struct {
		Name    string `json:"name"`
		Tagline string `json:"tagline"`
	}
	decodeSection(app, "company", &company)
	data.CompanyName = company.Name
	data.Tagline = company.Tagline
	if company.Name != "" {
		meta.Title = company.Name
	}

	var hero struct {
		Slides []templates.HeroSlide `json:"slides"`
	}
	decodeSection(app, "hero", &hero)
	data.Slides = hero.Slides

	var solutions struct {
		Title string `json:"title"`
	}
	decodeSection(app, "solutions", &solutions)
	data.SolutionsTitle = solutions.Title

	var advantages struct {
		Items []templates.AdvantageItem `json:"items"`
		Stats []templates.StatItem      `json:"stats"`
	}
	decodeSection(app, "advantages", &advantages)
	data.Advantages = advantages.Items
	data.Stats = advantages.Stats

	var portfolio struct {
		Projects []templates.PortfolioProject `json:"projects"`
	}
	decodeSection(app, "portfolio", &portfolio)
	data.Portfolio = portfolio.Projects

	var certificates struct {
		Items []templates.CertificateItem `json:"items"`
	}
	decodeSection(app, "certificates", &certificates)
	data.Certificates = certificates.Items

	contact := services.LoadContactSection(app)
	data.ContactTitle = contact.Title
	data.Phone = contact.Phone
	data.Email = contact.Email
	data.Address = contact.Address

	var seo struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Keywords    []string `json:"keywords"`
	}
	decodeSection(app, "seo", &seo)
	if seo.Title != "" {
		meta.Title = seo.Title
	}
	meta.Description = seo.Description
	meta.Keywords = seo.Keywords

	return data, meta
}

func decodeSection(app *pocketbase.PocketBase, key string, dst any) {
	raw, err := services.GetSection(app, key)
	if err != nil {
		log.Printf("site: could not load section %s: %v\n", key, err)
		return
	}
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("site: could not decode section %s: %v\n", key, err)
	}
}
