package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/cart"
	"github.com/nhle/taskshop/internal/catalog"
	"github.com/nhle/taskshop/internal/keys"
	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/route"
	appsync "github.com/nhle/taskshop/internal/sync"
	"github.com/nhle/taskshop/internal/tasks"
	"github.com/nhle/taskshop/internal/theme"
	"github.com/nhle/taskshop/internal/ui"
	"github.com/nhle/taskshop/internal/ui/cartview"
	"github.com/nhle/taskshop/internal/ui/command"
	"github.com/nhle/taskshop/internal/ui/dashboard"
	helpview "github.com/nhle/taskshop/internal/ui/help"
	"github.com/nhle/taskshop/internal/ui/login"
	"github.com/nhle/taskshop/internal/ui/productdetail"
	"github.com/nhle/taskshop/internal/ui/products"
	"github.com/nhle/taskshop/internal/ui/register"
	"github.com/nhle/taskshop/internal/ui/tasklist"
	"github.com/nhle/taskshop/internal/ui/toast"
)

// tasksLoadedMsg is sent once the task ledger has been hydrated.
type tasksLoadedMsg struct{}

// logoutResultMsg carries the outcome of a sign-out.
type logoutResultMsg struct {
	err error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewLogin
	ViewRegister
	ViewTasks
	ViewProducts
	ViewProductDetail
	ViewCart
	ViewNotFound
	ViewHelp
	ViewCommand
)

// Deps are the services the UI drives. The composition root owns them.
type Deps struct {
	Catalog  *catalog.Store
	Cart     *cart.Ledger
	Pricing  cart.Pricing
	Checkout cartview.Submitter
	Tasks    *tasks.Ledger
	Guard    *auth.Guard
	PageSize int
	// StartPath is the screen requested at launch. Empty means "/".
	StartPath string
	Logger    logrus.FieldLogger
}

// Model is the root Bubble Tea model that manages view routing, layout
// and the session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	logger       logrus.FieldLogger

	guard   *auth.Guard
	watcher *appsync.Watcher
	tasks   *tasks.Ledger
	cart    *cart.Ledger

	// requested is the last path asked for; pending is the protected path
	// a sign-in redirect interrupted.
	requested string
	pending   string
	path      string

	dashboard     dashboard.Model
	loginView     login.Model
	registerView  register.Model
	taskList      tasklist.Model
	productList   products.Model
	productDetail productdetail.Model
	cartView      cartview.Model
	helpView      helpview.Model
	commandView   command.Model
	toast         toast.Model
	spinner       spinner.Model

	ready bool
}

// New creates a new root application model.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	start := d.StartPath
	if start == "" {
		start = route.Home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		currentView:   ViewDashboard,
		keys:          k,
		logger:        logger.WithField("component", "ui"),
		guard:         d.Guard,
		watcher:       appsync.New(d.Guard),
		tasks:         d.Tasks,
		cart:          d.Cart,
		requested:     start,
		dashboard:     dashboard.New(80, 24),
		loginView:     login.New(d.Guard, 80, 24),
		registerView:  register.New(d.Guard, 80, 24),
		taskList:      tasklist.New(d.Tasks, k, 80, 24),
		productList:   products.New(d.Catalog, d.Cart, k, d.PageSize, 80, 24),
		productDetail: productdetail.New(d.Catalog, d.Cart, k, 80, 24),
		cartView:      cartview.New(d.Cart, d.Pricing, d.Checkout, k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
		toast:         toast.New(),
		spinner:       sp,
	}
}

// Init loads tasks, starts the spinner and restores the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadTasks(),
		m.watcher.Start(),
	)
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Path returns the path of the screen being shown.
func (m Model) Path() string {
	return m.path
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.loginView.SetSize(w, h)
		m.registerView.SetSize(w, h)
		m.taskList.SetSize(w, h)
		m.productList.SetSize(w, h)
		m.productDetail.SetSize(w, h)
		m.cartView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		if m.guard.Ready() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appsync.SessionChangedMsg:
		cmd := m.handleSessionChange(msg.Change)
		return m, tea.Batch(cmd, m.watcher.WaitForNextChange())

	case tasksLoadedMsg:
		m.taskList.Refresh()
		return m, nil

	case toast.ShowMsg, toast.ExpiredMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case ui.NavigateMsg:
		return m, m.navigate(msg.Path)

	case login.ResultMsg:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd

	case register.ResultMsg:
		var cmd tea.Cmd
		m.registerView, cmd = m.registerView.Update(msg)
		return m, cmd

	case tasklist.ChangedMsg:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case cartview.CheckoutMsg:
		var cmd tea.Cmd
		m.cartView, cmd = m.cartView.Update(msg)
		return m, cmd

	case logoutResultMsg:
		if msg.err != nil {
			return m, toast.Error(fmt.Sprintf("Sign out failed: %v", msg.err))
		}
		return m, toast.Show("Signed out", toast.KindInfo)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.watcher.Stop()
			return m, tea.Quit
		}
		if !m.guard.Ready() {
			return m, nil
		}
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. Views with a
// focused text field receive every key except esc and ctrl+c.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
		}
		return true, m, nil

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return true, m, nil
		}
		return false, m, nil

	case ViewLogin, ViewRegister:
		if key.Matches(msg, m.keys.Back) {
			return true, m, m.navigate(route.Home)
		}
		return false, m, nil
	}

	if m.inputFocused() {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.watcher.Stop()
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case key.Matches(msg, m.keys.GoHome):
		return true, m, m.navigate(route.Home)

	case key.Matches(msg, m.keys.GoTasks):
		return true, m, m.navigate(route.Tasks)

	case key.Matches(msg, m.keys.GoProducts):
		return true, m, m.navigate(route.Products)

	case key.Matches(msg, m.keys.GoCart):
		return true, m, m.navigate(route.Cart)

	case key.Matches(msg, m.keys.Logout):
		if m.guard.SignedIn() {
			return true, m, m.logout()
		}
	}
	return false, m, nil
}

func (m Model) inputFocused() bool {
	switch m.currentView {
	case ViewTasks:
		return m.taskList.InputFocused()
	case ViewProducts:
		return m.productList.InputFocused()
	}
	return false
}

// handleSessionChange re-resolves the current screen for the new session.
func (m *Model) handleSessionChange(c auth.Change) tea.Cmd {
	if c.Principal != nil {
		m.cartView.SetEmail(c.Principal.Email)
	} else {
		m.cartView.SetEmail("")
	}
	m.helpView.SetSignedIn(c.State == auth.StateSignedIn)

	onForm := m.currentView == ViewLogin || m.currentView == ViewRegister
	if c.State == auth.StateSignedIn && onForm && m.path != "" {
		next := m.pending
		if next == "" {
			next = route.Tasks
		}
		m.pending = ""
		return m.navigate(next)
	}
	return m.navigate(m.requested)
}

// navigate shows the screen for path, redirecting protected screens to the
// login form while signed out.
func (m *Model) navigate(path string) tea.Cmd {
	m.requested = path
	r, ok := m.guard.Resolve(path)
	if !ok {
		return nil
	}

	requested := route.Parse(path)
	if r.Name == route.NameLogin && requested.Protected() {
		m.pending = requested.Path
	}
	m.path = r.Path

	switch r.Name {
	case route.NameHome:
		m.currentView = ViewDashboard
	case route.NameLogin:
		if m.currentView == ViewLogin {
			return nil
		}
		m.currentView = ViewLogin
		return m.loginView.Reset()
	case route.NameRegister:
		if m.currentView == ViewRegister {
			return nil
		}
		m.currentView = ViewRegister
		return m.registerView.Reset()
	case route.NameTasks:
		m.currentView = ViewTasks
		m.taskList.Refresh()
	case route.NameProducts:
		m.currentView = ViewProducts
	case route.NameProductDetail:
		m.currentView = ViewProductDetail
		m.productDetail.SetProduct(r.ProductID)
	case route.NameCart:
		m.currentView = ViewCart
	default:
		m.currentView = ViewNotFound
	}
	return nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case ViewTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewProducts:
		m.productList, cmd = m.productList.Update(msg)
	case ViewProductDetail:
		m.productDetail, cmd = m.productDetail.Update(msg)
	case ViewCart:
		m.cartView, cmd = m.cartView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if !m.guard.Ready() {
		return lipgloss.Place(m.layout.Width, m.layout.Height,
			lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Restoring session...")
	}

	header := m.layout.RenderHeader(m.title(), m.sessionStatus())
	content := m.renderContent()

	hints := m.keyHints()
	if m.toast.Visible() {
		hints = m.toast.View()
	}
	statusBar := m.layout.RenderStatusBar(hints)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		m.dashboard.SetSummary(dashboard.Summary{
			Principal: m.guard.Principal(),
			Tasks:     m.tasks.Stats(),
			CartItems: m.cart.TotalQuantity(),
			CartTotal: m.cart.Subtotal(),
		})
		return m.dashboard.View()
	case ViewLogin:
		return m.loginView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewTasks:
		return m.taskList.View()
	case ViewProducts:
		return m.productList.View()
	case ViewProductDetail:
		return m.productDetail.View()
	case ViewCart:
		return m.cartView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return m.renderNotFound()
	}
}

func (m Model) renderNotFound() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Page not found"),
		theme.MutedStyle.Render(fmt.Sprintf("Nothing lives at %s.", m.path)),
		"",
		theme.HelpStyle.Render("1 dashboard · : go to a path"),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// title names the app and the current screen.
func (m Model) title() string {
	name := "TaskShop"
	switch m.currentView {
	case ViewDashboard:
		return name
	case ViewLogin:
		return name + " · Sign in"
	case ViewRegister:
		return name + " · Register"
	case ViewTasks:
		return name + " · Tasks"
	case ViewProducts:
		return name + " · Products"
	case ViewProductDetail:
		return name + " · " + m.productDetail.Product().Name
	case ViewCart:
		return name + " · Cart"
	case ViewHelp:
		return name + " · Help"
	}
	return name
}

// sessionStatus returns the signed-in user and cart size.
func (m Model) sessionStatus() string {
	p := m.guard.Principal()
	if p == nil {
		return "signed out"
	}
	name := p.DisplayName
	if name == "" {
		name = p.Email
	}
	return fmt.Sprintf("%s · cart %d", name, m.cart.TotalQuantity())
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter go | tab complete | esc back"
	case ViewLogin:
		return "enter submit | ctrl+r register | esc home"
	case ViewRegister:
		return "enter submit | ctrl+l sign in | esc home"
	case ViewTasks:
		if m.taskList.InputFocused() {
			return "enter add | esc done"
		}
		return "n new | space toggle | d delete | C clear completed | tab filter | ? help"
	case ViewProducts:
		if m.productList.InputFocused() {
			return "enter done | esc clear"
		}
		return "/ search | tab category | s sort | h/l page | a add | enter open | ? help"
	case ViewProductDetail:
		return "a add to cart | enter related | esc back"
	case ViewCart:
		return "+/- quantity | d remove | c checkout | ? help"
	default:
		if m.guard.SignedIn() {
			return "q quit | ? help | : go to | 1-4 screens | L logout"
		}
		return "q quit | ? help | : go to | 1-4 screens"
	}
}

// loadTasks returns a command that hydrates the task ledger.
func (m Model) loadTasks() tea.Cmd {
	l := m.tasks
	return func() tea.Msg {
		l.Load(context.Background())
		return tasksLoadedMsg{}
	}
}

// logout returns a command that ends the session.
func (m Model) logout() tea.Cmd {
	g := m.guard
	return func() tea.Msg {
		return logoutResultMsg{err: g.Logout(context.Background())}
	}
}

// executeCommand runs a palette entry.
func (m *Model) executeCommand(text string) tea.Cmd {
	c := command.Parse(text)
	if c.Path != "" {
		return m.navigate(c.Path)
	}

	switch c.Name {
	case command.Quit:
		m.watcher.Stop()
		return tea.Quit
	case command.Logout:
		if !m.guard.SignedIn() {
			return toast.Show("Not signed in", toast.KindInfo)
		}
		return m.logout()
	case command.Help:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.Checkout:
		return m.navigate(route.Cart)
	}
	return toast.Error(fmt.Sprintf("Unknown command %q", text))
}
