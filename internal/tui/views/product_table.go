package views

import (
	"fmt"

	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/rivo/tview"
)

// ProductTable is the main shop listing view.
type ProductTable struct {
	*tview.Table
	products   []catalog.Product
	isFavorite func(id int64) bool
	selectedFn func() (int, int)
}

// NewProductTable creates the product listing table.
func NewProductTable() *ProductTable {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true).SetTitle(" Shop ")

	pt := &ProductTable{Table: table}
	pt.isFavorite = func(int64) bool { return false }
	pt.selectedFn = table.GetSelection
	return pt
}

// SetFavoriteFunc sets the predicate used to render the favorite marker.
func (pt *ProductTable) SetFavoriteFunc(fn func(id int64) bool) {
	pt.isFavorite = fn
}

// Update refreshes the table with the given products.
func (pt *ProductTable) Update(products []catalog.Product, total int) {
	pt.products = products
	pt.Clear()

	pt.SetTitle(fmt.Sprintf(" Shop (%d shown, %d total) ", len(products), total))

	headers := []string{" ", " Title", " Category", " Price", " Rating", " Stock"}
	for col, h := range headers {
		pt.SetCell(0, col, tview.NewTableCell(h).SetSelectable(false).SetTextColor(tview.Styles.SecondaryTextColor))
	}

	for i, p := range products {
		row := i + 1

		star := " "
		if pt.isFavorite(p.ID) {
			star = "[yellow]*[-]"
		}

		price := fmt.Sprintf(" $%.2f", p.Price)
		if p.DiscountPercentage > 0 {
			price = fmt.Sprintf(" [green]$%.2f (-%.0f%%)[-]", p.Price, p.DiscountPercentage)
		}

		pt.SetCell(row, 0, tview.NewTableCell(star))
		pt.SetCell(row, 1, tview.NewTableCell(" "+p.Title).SetMaxWidth(36).SetExpansion(2))
		pt.SetCell(row, 2, tview.NewTableCell(" "+p.Category).SetMaxWidth(20).SetExpansion(1))
		pt.SetCell(row, 3, tview.NewTableCell(price).SetMaxWidth(22))
		pt.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf(" %.1f", p.Rating)).SetMaxWidth(6))
		pt.SetCell(row, 5, tview.NewTableCell(" "+p.AvailabilityStatus).SetMaxWidth(14))
	}

	if row, _ := pt.selectedFn(); row > len(products) {
		pt.Select(1, 0)
	}
}

// Selected returns the currently selected product, or nil.
func (pt *ProductTable) Selected() *catalog.Product {
	row, _ := pt.selectedFn()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(pt.products) {
		return &pt.products[idx]
	}
	return nil
}

// ShowError replaces the table contents with an error notice.
func (pt *ProductTable) ShowError(err error) {
	pt.products = nil
	pt.Clear()
	pt.SetTitle(" Shop ")
	pt.SetCell(0, 0, tview.NewTableCell(" [red]Could not load products: "+tview.Escape(err.Error())+"[-]").SetSelectable(false))
	pt.SetCell(1, 0, tview.NewTableCell(" Press R to retry.").SetSelectable(false))
}
