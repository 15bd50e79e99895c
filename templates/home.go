package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HeroSlide is one slide of the landing carousel.
type HeroSlide struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// AdvantageItem is one "why us" card.
type AdvantageItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// StatItem is one headline figure.
type StatItem struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// PortfolioProject is one finished-work card.
type PortfolioProject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CertificateItem is one license or certificate scan.
type CertificateItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// HomeData aggregates every content section the landing page renders.
type HomeData struct {
	CompanyName    string
	Tagline        string
	Slides         []HeroSlide
	SolutionsTitle string
	Advantages     []AdvantageItem
	Stats          []StatItem
	Portfolio      []PortfolioProject
	Certificates   []CertificateItem
	ContactTitle   string
	Phone          string
	Email          string
	Address        string
}

// HomePage renders the landing page body.
func HomePage(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, render := range []func(io.Writer, HomeData) error{
			renderHeader,
			renderHero,
			renderAdvantages,
			renderPortfolio,
			renderCertificates,
			renderContact,
		} {
			if err := render(w, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderHeader(w io.Writer, data HomeData) error {
	_, err := fmt.Fprintf(w,
		"<header class=\"site-header\"><div class=\"logo\">%s</div><div class=\"tagline\">%s</div></header>",
		templ.EscapeString(data.CompanyName), templ.EscapeString(data.Tagline))
	return err
}

func renderHero(w io.Writer, data HomeData) error {
	if len(data.Slides) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "<section id=\"hero\" class=\"hero\">"); err != nil {
		return err
	}
	for _, slide := range data.Slides {
		if _, err := fmt.Fprintf(w,
			"<article class=\"hero-slide\" data-slide=\"%s\"><h1>%s</h1><h2>%s</h2><p>%s</p></article>",
			templ.EscapeString(slide.ID),
			templ.EscapeString(slide.Title),
			templ.EscapeString(slide.Subtitle),
			templ.EscapeString(slide.Description)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>")
	return err
}

func renderAdvantages(w io.Writer, data HomeData) error {
	if len(data.Advantages) == 0 && len(data.Stats) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "<section id=\"advantages\" class=\"advantages\">"); err != nil {
		return err
	}
	for _, item := range data.Advantages {
		if _, err := fmt.Fprintf(w,
			"<div class=\"advantage-card\" data-icon=\"%s\"><h3>%s</h3><p>%s</p></div>",
			templ.EscapeString(item.Icon),
			templ.EscapeString(item.Title),
			templ.EscapeString(item.Description)); err != nil {
			return err
		}
	}
	for _, stat := range data.Stats {
		if _, err := fmt.Fprintf(w,
			"<div class=\"stat\"><span class=\"stat-value\">%s</span><span class=\"stat-label\">%s</span></div>",
			templ.EscapeString(stat.Value), templ.EscapeString(stat.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>")
	return err
}

func renderPortfolio(w io.Writer, data HomeData) error {
	if len(data.Portfolio) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "<section id=\"portfolio\" class=\"portfolio\">"); err != nil {
		return err
	}
	for _, project := range data.Portfolio {
		if _, err := fmt.Fprintf(w,
			"<article class=\"portfolio-card\"><img src=\"%s\" alt=\"%s\"><h3>%s</h3><p>%s</p></article>",
			templ.EscapeString(project.Image),
			templ.EscapeString(project.Title),
			templ.EscapeString(project.Title),
			templ.EscapeString(project.Description)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>")
	return err
}

func renderCertificates(w io.Writer, data HomeData) error {
	if len(data.Certificates) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "<section id=\"certificates\" class=\"certificates\">"); err != nil {
		return err
	}
	for _, cert := range data.Certificates {
		if _, err := fmt.Fprintf(w,
			"<figure class=\"certificate\"><img src=\"%s\" alt=\"%s\"><figcaption>%s</figcaption></figure>",
			templ.EscapeString(cert.Image),
			templ.EscapeString(cert.Title),
			templ.EscapeString(cert.Title)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>")
	return err
}

func renderContact(w io.Writer, data HomeData) error {
	if _, err := fmt.Fprintf(w,
		"<section id=\"contact\" class=\"contact\"><h2>%s</h2>",
		templ.EscapeString(data.ContactTitle)); err != nil {
		return err
	}
	if data.Phone != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"contact-phone\">%s</p>", templ.EscapeString(data.Phone)); err != nil {
			return err
		}
	}
	if data.Email != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"contact-email\">%s</p>", templ.EscapeString(data.Email)); err != nil {
			return err
		}
	}
	if data.Address != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"contact-address\">%s</p>", templ.EscapeString(data.Address)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "<form id=\"contact-form\" method=\"post\" action=\"/api/contact\">"+
		"<input name=\"name\" placeholder=\"Имя\" required>"+
		"<input name=\"phone\" placeholder=\"Телефон\" required>"+
		"<input name=\"email\" type=\"email\" placeholder=\"Email\">"+
		"<textarea name=\"message\" placeholder=\"Сообщение\" required></textarea>"+
		"<button type=\"submit\">Отправить</button></form></section>")
	return err
}
