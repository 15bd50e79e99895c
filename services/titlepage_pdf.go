package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// TitlePageData carries everything printed on an execution-documentation
// title page.
type TitlePageData struct {
	DocumentTitle         string
	ProjectTitle          string
	City                  string
	Address               string
	Year                  string
	ApprovedBy            string
	ApprovedDate          string
	DeveloperName         string
	DeveloperPosition     string
	ChiefEngineerName     string
	ChiefEngineerPosition string
}

// GenerateTitlePagePDF renders a printable A4 title page.
func GenerateTitlePagePDF(data TitlePageData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addApprovalBlock(m, data)
	addTitleBlock(m, data)
	addSignatureBlock(m, data)
	addFooterBlock(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addApprovalBlock prints the "УТВЕРЖДАЮ" corner when an approver is set.
func addApprovalBlock(m core.Maroto, data TitlePageData) {
	if data.ApprovedBy == "" {
		m.AddRows(row.New(30))
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(7),
			col.New(5).Add(text.New("УТВЕРЖДАЮ", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		),
		row.New(6).Add(
			col.New(7),
			col.New(5).Add(text.New(data.ApprovedBy, props.Text{
				Size:  10,
				Align: align.Center,
			})),
		),
	)
	if data.ApprovedDate != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(7),
				col.New(5).Add(text.New("«"+data.ApprovedDate+"»", props.Text{
					Size:  10,
					Align: align.Center,
				})),
			),
		)
	}
	m.AddRows(row.New(16))
}

// addTitleBlock prints the centered document title (possibly multi-line),
// the project and the address.
func addTitleBlock(m core.Maroto, data TitlePageData) {
	for _, titleLine := range strings.Split(data.DocumentTitle, "\n") {
		m.AddRows(
			row.New(10).Add(
				col.New(12).Add(text.New(titleLine, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
				})),
			),
		)
	}

	if data.ProjectTitle != "" {
		m.AddRows(
			row.New(12).Add(
				col.New(12).Add(text.New(data.ProjectTitle, props.Text{
					Size:  13,
					Align: align.Center,
					Top:   4,
				})),
			),
		)
	}
	if data.Address != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New(data.Address, props.Text{
					Size:  11,
					Align: align.Center,
				})),
			),
		)
	}
	m.AddRows(row.New(40))
}

// addSignatureBlock prints one signature line per signatory that is set.
func addSignatureBlock(m core.Maroto, data TitlePageData) {
	signatories := []struct {
		position string
		name     string
	}{
		{data.DeveloperPosition, data.DeveloperName},
		{data.ChiefEngineerPosition, data.ChiefEngineerName},
	}

	for _, s := range signatories {
		if s.position == "" && s.name == "" {
			continue
		}
		m.AddRows(
			row.New(8).Add(
				col.New(5).Add(text.New(s.position, props.Text{Size: 11})),
				col.New(3).Add(line.New(props.Line{SizePercent: 90})),
				col.New(4).Add(text.New(s.name, props.Text{
					Size:  11,
					Align: align.Right,
				})),
			),
			row.New(6),
		)
	}
}

// addFooterBlock prints city and year at the bottom.
func addFooterBlock(m core.Maroto, data TitlePageData) {
	footer := strings.TrimSpace(data.City + " " + data.Year)
	if footer == "" {
		return
	}
	m.AddRows(
		row.New(30),
		row.New(8).Add(
			col.New(12).Add(text.New(footer, props.Text{
				Size:  11,
				Align: align.Center,
			})),
		),
	)
}
