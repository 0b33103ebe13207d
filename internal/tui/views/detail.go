package views

import (
	"fmt"
	"strings"

	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/rivo/tview"
)

// DetailView shows the full record for one product.
type DetailView struct {
	*tview.TextView
}

// NewDetailView creates the product detail view.
func NewDetailView() *DetailView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Product ")

	return &DetailView{TextView: tv}
}

// Show renders a freshly fetched record.
func (dv *DetailView) Show(p *catalog.Product) {
	dv.Clear()
	dv.SetTitle(fmt.Sprintf(" %s ", tview.Escape(p.Title)))

	price := fmt.Sprintf("$%.2f", p.Price)
	if p.DiscountPercentage > 0 {
		price = fmt.Sprintf("[green]%s (-%.0f%%)[-]", price, p.DiscountPercentage)
	}

	_, _ = fmt.Fprintf(dv, "[::b]%s[-:-:-]\n", tview.Escape(p.Title))
	if p.Brand != "" {
		_, _ = fmt.Fprintf(dv, "%s\n", tview.Escape(p.Brand))
	}
	_, _ = fmt.Fprintf(dv, "\n%s   %.1f stars (%d reviews)\n", price, p.Rating, len(p.Reviews))
	_, _ = fmt.Fprintf(dv, "%s (%d left)   %s\n", p.AvailabilityStatus, p.Stock, p.Category)
	if len(p.Tags) > 0 {
		_, _ = fmt.Fprintf(dv, "Tags: %s\n", tview.Escape(strings.Join(p.Tags, ", ")))
	}

	_, _ = fmt.Fprintf(dv, "\n%s\n", tview.Escape(p.Description))

	_, _ = fmt.Fprintf(dv, "\n[::d]SKU %s   %.0fg   %.1f x %.1f x %.1f cm[-:-:-]\n",
		tview.Escape(p.SKU), p.Weight, p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth)
	if p.WarrantyInformation != "" {
		_, _ = fmt.Fprintf(dv, "[::d]%s[-:-:-]\n", tview.Escape(p.WarrantyInformation))
	}
	if p.ShippingInformation != "" {
		_, _ = fmt.Fprintf(dv, "[::d]%s[-:-:-]\n", tview.Escape(p.ShippingInformation))
	}
	if p.ReturnPolicy != "" {
		_, _ = fmt.Fprintf(dv, "[::d]%s[-:-:-]\n", tview.Escape(p.ReturnPolicy))
	}

	for _, r := range p.Reviews {
		_, _ = fmt.Fprintf(dv, "\n%d/5 [::b]%s[-:-:-]\n%s\n", r.Rating, tview.Escape(r.ReviewerName), tview.Escape(r.Comment))
	}

	dv.ScrollToBeginning()
}
