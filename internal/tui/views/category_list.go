package views

import (
	"github.com/fyndhq/fynd/internal/filter"
	"github.com/rivo/tview"
)

// CategoryList lets the user browse into a single category.
type CategoryList struct {
	*tview.Table
	slugs      []string
	selectedFn func() (int, int)
}

// NewCategoryList builds the category browser from the category hierarchy.
// The first entry clears the category selection.
func NewCategoryList() *CategoryList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true).SetTitle(" Categories ")

	cl := &CategoryList{Table: table}
	cl.selectedFn = table.GetSelection

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(" All products"))
	cl.slugs = append(cl.slugs, "")
	row++

	var addLeaves func(leaves []filter.CategoryLeaf, indent string)
	addLeaves = func(leaves []filter.CategoryLeaf, indent string) {
		for _, leaf := range leaves {
			table.SetCell(row, 0, tview.NewTableCell(indent+leaf.Label))
			cl.slugs = append(cl.slugs, leaf.Slug)
			row++
			addLeaves(leaf.Children, indent+"  ")
		}
	}

	for _, group := range filter.Hierarchy {
		table.SetCell(row, 0, tview.NewTableCell(" "+group.Label).
			SetSelectable(false).
			SetTextColor(tview.Styles.SecondaryTextColor))
		cl.slugs = append(cl.slugs, "")
		row++
		addLeaves(group.Children, "   ")
	}

	return cl
}

// SelectedSlug returns the category slug for the selected row. Empty means
// no category (browse everything).
func (cl *CategoryList) SelectedSlug() string {
	row, _ := cl.selectedFn()
	if row >= 0 && row < len(cl.slugs) {
		return cl.slugs[row]
	}
	return ""
}
