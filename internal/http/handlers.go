package http

import (
	"errors"
	"net/http"
	"strings"

	"smartspend/internal/auth"
	"smartspend/internal/chat"
	"smartspend/internal/core"
)

// loginView is the data for the login/register page.
type loginView struct {
	Error  string
	Notice string
}

// expenseRow is one entry of the recent-expenses sidebar.
type expenseRow struct {
	Description string
	Amount      string
	When        string
}

// indexView is the data for the main page after login.
type indexView struct {
	User         string
	Balance      string
	LastExpenses []expenseRow
	History      []chat.Message
	Error        string
	Notice       string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.session.LoggedIn {
		s.renderLogin(w, r, loginView{})
		return
	}
	s.renderIndex(w, r, "", "")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, loginView{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	err := s.authSvc.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrEmptyCredentials):
		s.renderLogin(w, r, loginView{Error: "Username and password cannot be empty!"})
	case errors.Is(err, auth.ErrUsernameTaken):
		s.renderLogin(w, r, loginView{Error: "Username already exists!"})
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Registration failed", "error", err, "username", username)
		s.renderLogin(w, r, loginView{Error: "An error occurred. Please try again."})
	default:
		s.renderLogin(w, r, loginView{Notice: "Registration successful! Please login."})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, loginView{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := s.authSvc.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrEmptyCredentials):
		s.renderLogin(w, r, loginView{Error: "Username and password cannot be empty!"})
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.renderLogin(w, r, loginView{Error: "Invalid username or password!"})
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Login failed", "error", err, "username", username)
		s.renderLogin(w, r, loginView{Error: "An error occurred. Please try again."})
		return
	}

	s.session.Login(user.Username)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout()
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderIndex(w, r, "", "Invalid form submission")
		return
	}

	text := strings.TrimSpace(r.FormValue("message"))
	if text == "" {
		s.renderIndex(w, r, "", "")
		return
	}

	// Structured commands do not enter the chat transcript; their
	// confirmation is surfaced as a notice instead.
	before := len(s.session.History)
	reply := s.orch.ProcessMessage(r.Context(), s.session, text)
	notice := ""
	if len(s.session.History) == before {
		notice = reply
	}
	s.renderIndex(w, r, notice, "")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.orch.ProcessMessage(r.Context(), s.session, chat.PromptAnalyzeSpending)
	s.renderIndex(w, r, "", "")
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	s.orch.ProcessMessage(r.Context(), s.session, chat.PromptSavingsAdvice)
	s.renderIndex(w, r, "", "")
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderIndex(w, r, "", "Invalid form submission")
		return
	}

	desc := strings.TrimSpace(r.FormValue("description"))
	cents, err := core.ParseDecimalToCents(r.FormValue("amount"))
	if err != nil {
		s.renderIndex(w, r, "", "Invalid amount")
		return
	}

	// Form submissions are validated up front; only chat commands pass
	// descriptions through unchecked.
	amount := core.Money{Cents: cents}
	if err := (core.Expense{Description: desc, Amount: amount}).Validate(); err != nil {
		s.renderIndex(w, r, "", "Invalid expense data")
		return
	}

	err = s.orch.AddExpense(r.Context(), desc, amount)
	switch {
	case errors.Is(err, core.ErrInsufficientFunds):
		s.renderIndex(w, r, "", "❌ Insufficient funds! Please check your balance.")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to add expense", "error", err)
		s.renderIndex(w, r, "", "An error occurred. Please try again.")
	default:
		s.renderIndex(w, r, "✅ Added: "+desc+" - "+amount.String(), "")
	}
}

func (s *Server) handleAddBalance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderIndex(w, r, "", "Invalid form submission")
		return
	}

	cents, err := core.ParseDecimalToCents(r.FormValue("amount"))
	if err != nil {
		s.renderIndex(w, r, "", "Invalid amount")
		return
	}

	amount := core.Money{Cents: cents}
	if err := s.orch.AddToBalance(r.Context(), amount); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add to balance", "error", err)
		s.renderIndex(w, r, "", "An error occurred. Please try again.")
		return
	}
	s.renderIndex(w, r, "✅ Added "+amount.String()+" to your balance", "")
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, view loginView) {
	if err := s.templates.ExecuteTemplate(w, "login.html", view); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error", "error", err)
	}
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, notice, errMsg string) {
	ctx := r.Context()

	view := indexView{
		User:    s.session.CurrentUser,
		History: s.session.History,
		Notice:  notice,
		Error:   errMsg,
	}

	balance, err := s.store.Balance(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read balance", "error", err)
		view.Error = "Could not load your balance. Please try again."
	} else {
		view.Balance = balance.String()
	}

	last, err := s.store.LastExpenses(ctx, 10)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load recent expenses", "error", err)
	}
	for _, e := range last {
		view.LastExpenses = append(view.LastExpenses, expenseRow{
			Description: e.Description,
			Amount:      e.Amount.String(),
			When:        e.Timestamp.Format("2006-01-02 15:04"),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		s.logger.ErrorContext(ctx, "Template execution error", "error", err)
	}
}
