// Package tui is the terminal front-end: a shop listing with filters,
// favorites and shareable links, plus a per-product seller chat.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/auth"
	"github.com/fyndhq/fynd/internal/bus"
	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/chat"
	"github.com/fyndhq/fynd/internal/config"
	"github.com/fyndhq/fynd/internal/favorites"
	"github.com/fyndhq/fynd/internal/filter"
	"github.com/fyndhq/fynd/internal/shop"
	"github.com/fyndhq/fynd/internal/status"
	"github.com/fyndhq/fynd/internal/tui/keys"
	"github.com/fyndhq/fynd/internal/tui/model"
	"github.com/fyndhq/fynd/internal/tui/views"
	"github.com/fyndhq/fynd/internal/urlstate"
)

// App is the main TUI application shell.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	keymap *keys.Keymap
	flash  *model.Flash

	cfg     *config.Config
	catalog *catalog.Client
	shop    *shop.Controller
	session *chat.Session
	favs    *favorites.Favorites
	auth    *auth.Manager
	bus     *bus.Bus
	logger  *zap.Logger

	table      *views.ProductTable
	searchBar  *views.SearchBar
	categories *views.CategoryList
	detail     *views.DetailView
	thread     *views.Thread
	composer   *views.Composer
	statusBar  *views.StatusBar
	share      *views.ShareView
	login      *views.LoginForm

	// detailProduct is the record currently shown on the detail page.
	detailProduct *catalog.Product

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(cfg *config.Config, client *catalog.Client, ctrl *shop.Controller, session *chat.Session, favs *favorites.Favorites, authMgr *auth.Manager, b *bus.Bus, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		keymap:     keys.NewKeymap(),
		flash:      &model.Flash{},
		cfg:        cfg,
		catalog:    client,
		shop:       ctrl,
		session:    session,
		favs:       favs,
		auth:       authMgr,
		bus:        b,
		logger:     logger.Named("tui"),
		table:      views.NewProductTable(),
		searchBar:  views.NewSearchBar(),
		categories: views.NewCategoryList(),
		detail:     views.NewDetailView(),
		thread:     views.NewThread(),
		composer:   views.NewComposer(),
		statusBar:  views.NewStatusBar(),
		share:      views.NewShareView(),
		login:      views.NewLoginForm(),
		ctx:        ctx,
		cancel:     cancel,
	}

	a.table.SetFavoriteFunc(favs.IsFavorite)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.keymap.Global(&keys.Binding{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.app.Stop() },
	})

	a.keymap.Page("shop", &keys.Binding{
		Rune: '/', Key: tcell.KeyRune,
		Description: "/:search", Visible: true,
		Handler: func() { a.app.SetFocus(a.searchBar) },
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'c', Key: tcell.KeyRune,
		Description: "c:categories", Visible: true,
		Handler: func() { a.switchTo("categories", a.categories) },
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'f', Key: tcell.KeyRune,
		Description: "f:favorite", Visible: true,
		Handler: func() {
			if p := a.table.Selected(); p != nil {
				a.favs.Toggle(p.ID)
			}
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'o', Key: tcell.KeyRune,
		Description: "o:on-sale", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) { c.OnSale = !c.OnSale })
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'p', Key: tcell.KeyRune,
		Description: "p:price", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				c.PriceRange = cycle(c.PriceRange, filter.ValidPriceRanges)
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "a:availability", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				c.Condition = cycle(c.Condition, filter.ValidConditions)
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'r', Key: tcell.KeyRune,
		Description: "r:rating", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				c.MinRating = nextRating(c.MinRating)
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 's', Key: tcell.KeyRune,
		Description: "s:sort", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				c.Sort = filter.ValidSorts[(indexOf(c.Sort, filter.ValidSorts)+1)%len(filter.ValidSorts)]
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'v', Key: tcell.KeyRune,
		Description: "v:order", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				if c.Order == "desc" {
					c.Order = "asc"
				} else {
					c.Order = "desc"
				}
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: ']', Key: tcell.KeyRune,
		Description: "]:next page", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) { c.Page++ })
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: '[', Key: tcell.KeyRune,
		Description: "[:prev page", Visible: true,
		Handler: func() {
			a.updateCriteria(func(c *filter.Criteria) {
				if c.Page > 0 {
					c.Page--
				}
			})
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'x', Key: tcell.KeyRune,
		Description: "x:clear", Visible: true,
		Handler: func() {
			a.shop.SetCriteria(filter.Default())
			a.refresh()
		},
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'u', Key: tcell.KeyRune,
		Description: "u:share", Visible: true,
		Handler: func() { a.showShare() },
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'R', Key: tcell.KeyRune,
		Description: "R:reload", Visible: false,
		Handler: func() { a.refresh() },
	})
	a.keymap.Page("shop", &keys.Binding{
		Rune: 'L', Key: tcell.KeyRune,
		Description: "L:sign in/out", Visible: true,
		Handler: func() { a.toggleLogin() },
	})
	a.keymap.Page("shop", &keys.Binding{
		Key:         tcell.KeyEnter,
		Description: "enter:view", Visible: true,
		Handler: func() {
			if p := a.table.Selected(); p != nil {
				a.openDetail(p.ID)
			}
		},
	})

	a.keymap.Page("detail", &keys.Binding{
		Key:         tcell.KeyEnter,
		Description: "enter:chat with seller", Visible: true,
		Handler: func() {
			if p := a.currentDetail(); p != nil {
				a.openChat(p.ID, p.Title)
			}
		},
	})
	a.keymap.Page("detail", &keys.Binding{
		Rune: 'f', Key: tcell.KeyRune,
		Description: "f:favorite", Visible: true,
		Handler: func() {
			if p := a.currentDetail(); p != nil {
				a.favs.Toggle(p.ID)
			}
		},
	})
}

func (a *App) setupCallbacks() {
	a.searchBar.SetOnSubmit(func(query string) {
		a.updateCriteria(func(c *filter.Criteria) { c.Search = strings.TrimSpace(query) })
		a.app.SetFocus(a.table)
	})

	a.categories.SetSelectedFunc(func(row, col int) {
		slug := a.categories.SelectedSlug()
		a.updateCriteria(func(c *filter.Criteria) { c.Category = slug })
		a.switchTo("shop", a.table)
	})

	a.composer.SetOnSend(func(text string) {
		a.session.Send(text)
		a.renderChat()
	})

	a.login.SetOnSubmit(func(username, password string) {
		go func() {
			err := a.auth.Login(a.ctx, username, password)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flash.Set("Sign in failed: "+err.Error(), model.DefaultFlashTTL)
					a.statusBar.SetFlash(a.flash.Get())
					return
				}
				a.login.Reset()
				a.switchTo("shop", a.table)
			})
		}()
	})
	a.login.SetOnCancel(func() {
		a.switchTo("shop", a.table)
	})
}

func (a *App) setupLayout() {
	shopFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.searchBar, 1, 0, false).
		AddItem(a.table, 0, 1, true)

	chatFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, true).
		AddItem(a.composer, 1, 0, false)

	a.pages.AddPage("shop", shopFlex, true, true)
	a.pages.AddPage("detail", a.detail, true, false)
	a.pages.AddPage("chat", chatFlex, true, false)
	a.pages.AddPage("categories", a.categories, true, false)
	a.pages.AddPage("share", a.share, true, false)
	a.pages.AddPage("login", a.login, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.pages.GetFrontPage()

		if event.Key() == tcell.KeyEscape {
			switch currentPage {
			case "chat":
				a.closeChat()
				return nil
			case "detail", "categories", "share", "login":
				a.switchTo("shop", a.table)
				return nil
			}
		}

		// Let text input widgets handle all keys normally.
		focused := a.app.GetFocus()
		if _, ok := focused.(*tview.InputField); ok {
			return event
		}

		// 'i' focuses the composer (only when not already in an input field).
		if currentPage == "chat" && event.Key() == tcell.KeyRune && event.Rune() == 'i' {
			a.app.SetFocus(a.composer.InputField)
			return nil
		}

		if a.keymap.HandleEvent(currentPage, event) {
			return nil
		}

		return event
	})
}

// switchTo changes the front page and updates the hint line.
func (a *App) switchTo(page string, focus tview.Primitive) {
	a.pages.SwitchToPage(page)
	a.app.SetFocus(focus)
	a.statusBar.SetHints(a.keymap.Hints(page))
}

// updateCriteria applies a criteria change and kicks off a server refresh.
func (a *App) updateCriteria(mutate func(*filter.Criteria)) {
	a.shop.Update(mutate)
	a.refresh()
}

// refresh re-runs the active query in the background and redraws the shop.
func (a *App) refresh() {
	a.statusBar.SetFilters(summarize(a.shop.Criteria()))
	go func() {
		err := a.shop.Refresh(a.ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.logger.Warn("catalog query failed", zap.Error(err))
				a.table.ShowError(err)
				return
			}
			a.table.Update(a.shop.Visible(), a.shop.Total())
		})
	}()
}

// openDetail fetches the full record and shows the detail page. The list
// carries a trimmed projection; the detail view always refetches.
func (a *App) openDetail(productID int64) {
	go func() {
		p, err := a.catalog.Product(a.ctx, productID)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.logger.Warn("product fetch failed", zap.Int64("product_id", productID), zap.Error(err))
				a.flash.Set("Could not load product: "+err.Error(), model.DefaultFlashTTL)
				a.statusBar.SetFlash(a.flash.Get())
				return
			}
			a.detailProduct = p
			a.detail.Show(p)
			a.switchTo("detail", a.detail)
		})
	}()
}

// currentDetail returns the record on the detail page, nil if none.
func (a *App) currentDetail() *catalog.Product {
	return a.detailProduct
}

func (a *App) openChat(productID int64, title string) {
	a.session.SetProduct(productID)
	a.session.SetOpen(true)
	a.thread.SetProductTitle(title)
	a.renderChat()
	a.switchTo("chat", a.thread)
}

func (a *App) closeChat() {
	a.session.SetOpen(false)
	a.switchTo("detail", a.detail)
}

func (a *App) renderChat() {
	a.thread.Update(a.session.Messages(), a.session.Typing())
	a.composer.SetEnabled(a.session.Status() == status.Connected)
	a.statusBar.SetConn(a.session.Status())
}

func (a *App) showShare() {
	a.share.Show(urlstate.ShareURL(a.cfg.WebBaseURL, a.shop.Criteria()))
	a.switchTo("share", a.share)
}

func (a *App) toggleLogin() {
	if a.auth.IsAuthenticated() {
		a.auth.Logout()
		a.flash.Set("Signed out", model.DefaultFlashTTL)
		a.statusBar.SetFlash(a.flash.Get())
		return
	}
	a.switchTo("login", a.login)
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.renderUser()
	a.statusBar.SetHints(a.keymap.Hints("shop"))
	a.refresh()
	go a.consumeEvents()
	return a.app.Run()
}

// consumeEvents redraws views in response to domain events.
func (a *App) consumeEvents() {
	events, unsubscribe := a.bus.Subscribe("", 64)
	defer unsubscribe()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			a.app.QueueUpdateDraw(func() { a.handleEvent(evt) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) handleEvent(evt bus.Event) {
	switch {
	case strings.HasPrefix(evt.Kind, "chat."):
		a.renderChat()
	case evt.Kind == "favorites.changed":
		a.table.Update(a.shop.Visible(), a.shop.Total())
	case evt.Kind == "auth.changed":
		a.renderUser()
	}
}

func (a *App) renderUser() {
	name := ""
	if u := a.auth.User(); u != nil {
		name = u.Username
		if a.auth.IsAdmin() {
			name += " (admin)"
		}
	}
	a.statusBar.SetUser(name)
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// summarize renders the active non-default criteria for the status bar.
func summarize(c filter.Criteria) string {
	var parts []string
	if c.Search != "" {
		parts = append(parts, "q="+c.Search)
	}
	if c.Category != "" {
		parts = append(parts, c.Category)
	}
	if c.OnSale {
		parts = append(parts, "on sale")
	}
	if c.PriceRange != "" {
		parts = append(parts, c.PriceRange)
	}
	if c.Condition != "" {
		parts = append(parts, c.Condition)
	}
	if c.MinRating > 0 {
		parts = append(parts, fmt.Sprintf("%d+ stars", c.MinRating))
	}
	parts = append(parts, fmt.Sprintf("%s/%s p%d", c.Sort, c.Order, c.Page+1))
	return strings.Join(parts, " | ")
}

// nextRating cycles the minimum-rating filter through its full 0..5 range.
func nextRating(r int) int {
	return (r + 1) % 6
}

// cycle advances through "" followed by each valid value, wrapping around.
func cycle(current string, valid []string) string {
	if current == "" {
		return valid[0]
	}
	i := indexOf(current, valid)
	if i < 0 || i == len(valid)-1 {
		return ""
	}
	return valid[i+1]
}

func indexOf(s string, in []string) int {
	for i, v := range in {
		if v == s {
			return i
		}
	}
	return -1
}
