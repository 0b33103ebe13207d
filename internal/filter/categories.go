package filter

// CategoryLeaf is a selectable category slug in the sidebar tree.
type CategoryLeaf struct {
	Label    string
	Slug     string
	Children []CategoryLeaf
}

// CategoryGroup is a top-level sidebar section.
type CategoryGroup struct {
	Label    string
	ID       string
	Children []CategoryLeaf
}

// Hierarchy is the curated sidebar category tree. Slugs must match the
// catalog API's category slugs.
var Hierarchy = []CategoryGroup{
	{
		Label: "Beauty & Care",
		ID:    "beauty",
		Children: []CategoryLeaf{
			{Label: "Beauty", Slug: "beauty"},
			{Label: "Fragrances", Slug: "fragrances"},
			{Label: "Skin Care", Slug: "skin-care"},
		},
	},
	{
		Label: "Electronics",
		ID:    "electronics",
		Children: []CategoryLeaf{
			{Label: "Laptops", Slug: "laptops"},
			{Label: "Smartphones", Slug: "smartphones"},
			{Label: "Tablets", Slug: "tablets"},
			{Label: "Mobile Accessories", Slug: "mobile-accessories"},
		},
	},
	{
		Label: "Fashion",
		ID:    "fashion",
		Children: []CategoryLeaf{
			{
				Label: "Clothing",
				Slug:  "tops",
				Children: []CategoryLeaf{
					{Label: "Tops", Slug: "tops"},
					{Label: "Women's Dresses", Slug: "womens-dresses"},
					{Label: "Men's Shirts", Slug: "mens-shirts"},
				},
			},
			{
				Label: "Shoes",
				Slug:  "mens-shoes",
				Children: []CategoryLeaf{
					{Label: "Men's Shoes", Slug: "mens-shoes"},
					{Label: "Women's Shoes", Slug: "womens-shoes"},
				},
			},
			{
				Label: "Accessories",
				Slug:  "womens-bags",
				Children: []CategoryLeaf{
					{Label: "Bags", Slug: "womens-bags"},
					{Label: "Jewellery", Slug: "womens-jewellery"},
					{Label: "Sunglasses", Slug: "sunglasses"},
					{Label: "Men's Watches", Slug: "mens-watches"},
					{Label: "Women's Watches", Slug: "womens-watches"},
				},
			},
		},
	},
	{
		Label: "Home & Garden",
		ID:    "home",
		Children: []CategoryLeaf{
			{Label: "Furniture", Slug: "furniture"},
			{Label: "Home Decoration", Slug: "home-decoration"},
			{Label: "Kitchen", Slug: "kitchen-accessories"},
		},
	},
	{
		Label: "Sports",
		ID:    "sports",
		Children: []CategoryLeaf{
			{Label: "Sports Accessories", Slug: "sports-accessories"},
		},
	},
}

// Tab is a demographic shortcut above the product grid, mapped to a
// category slug ("" = everything).
type Tab struct {
	Label    string
	Category string
}

// Tabs are the demographic shortcuts, separate from the sidebar tree.
var Tabs = []Tab{
	{Label: "Women", Category: "womens-dresses"},
	{Label: "Men", Category: "mens-shirts"},
	{Label: "Unisex", Category: "tops"},
	{Label: "Children", Category: "sports-accessories"},
	{Label: "New", Category: ""},
}
