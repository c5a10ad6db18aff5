package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SAUL-ALVES/useradmin/internal/config"
	"github.com/SAUL-ALVES/useradmin/internal/domain/user"
	"github.com/SAUL-ALVES/useradmin/internal/http/flash"
	"github.com/gin-gonic/gin"
)

// UsersStore is the slice of the repository the pages need.
type UsersStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
	List(ctx context.Context, q string) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Update(ctx context.Context, id int64, params user.UpdateParams) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

// Hasher derives a storable hash from a plaintext password.
type Hasher func(plain string) (string, error)

type UsersHandler struct {
	store UsersStore
	flash *flash.Store
	hash  Hasher
	log   *slog.Logger
}

func NewUsersHandler(store UsersStore, fl *flash.Store, hash Hasher, log *slog.Logger) *UsersHandler {
	return &UsersHandler{
		store: store,
		flash: fl,
		hash:  hash,
		log:   log,
	}
}

// Index redirects the root to the listing.
func (h *UsersHandler) Index(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/users/page")
}

// NewForm renders the creation form.
func (h *UsersHandler) NewForm(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "users_new.html", gin.H{"Title": "New user"})
}

// CreateFromForm handles POST /users/form.
func (h *UsersHandler) CreateFromForm(ctx *gin.Context) {
	var f userForm

	msg, ok := bindForm(ctx, &f)
	if !ok {
		h.redirectWithError(ctx, "/users/new", msg)
		return
	}

	name := strings.TrimSpace(f.Name)
	email := user.NormalizeEmail(f.Email)
	password := f.password()

	if name == "" || email == "" || password == "" {
		h.redirectWithError(ctx, "/users/new", "Name, email and password are required.")
		return
	}

	passwordHash, err := h.hash(password)

	if err != nil {
		h.unexpected(ctx, "/users/new", "hash password", err)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	created, err := h.store.Create(cctx, name, email, passwordHash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			h.redirectWithError(ctx, "/users/new", "Email already in use.")
			return
		}

		h.unexpected(ctx, "/users/new", "create user", err)
		return
	}

	h.flash.Add(ctx, flash.SeveritySuccess, fmt.Sprintf("User %s created.", created.Email))
	ctx.Redirect(http.StatusSeeOther, "/users/page")
}

// ListPage handles GET /users/page with an optional ?q= filter.
func (h *UsersHandler) ListPage(ctx *gin.Context) {
	q := strings.TrimSpace(ctx.Query("q"))

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	users, err := h.store.List(cctx, q)

	if err != nil {
		// the listing is the landing page; there is nowhere sane to
		// redirect to, so render the error page instead
		h.log.ErrorContext(ctx.Request.Context(), "list users failed", "err", err)
		h.render(ctx, http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Message": "Could not list users. Please try again.",
		})
		return
	}

	h.render(ctx, http.StatusOK, "users_page.html", gin.H{
		"Title": "Users",
		"Users": users,
		"Query": q,
	})
}

// EditForm handles GET /users/:id/edit.
func (h *UsersHandler) EditForm(ctx *gin.Context) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.redirectWithError(ctx, "/users/page", "User not found.")
			return
		}

		h.unexpected(ctx, "/users/page", "load user", err)
		return
	}

	h.render(ctx, http.StatusOK, "users_edit.html", gin.H{
		"Title": "Edit user",
		"User":  u,
	})
}

// UpdateFromForm handles POST /users/:id/edit.
func (h *UsersHandler) UpdateFromForm(ctx *gin.Context) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	editPath := fmt.Sprintf("/users/%d/edit", id)

	var f userForm

	msg, bound := bindForm(ctx, &f)
	if !bound {
		h.redirectWithError(ctx, editPath, msg)
		return
	}

	name := strings.TrimSpace(f.Name)
	email := user.NormalizeEmail(f.Email)

	if name == "" || email == "" {
		h.redirectWithError(ctx, editPath, "Name and email are required.")
		return
	}

	params := user.UpdateParams{
		Name:  name,
		Email: email,
	}

	// a new password is optional; the stored hash is kept when absent
	if password := f.password(); password != "" {
		passwordHash, err := h.hash(password)

		if err != nil {
			h.unexpected(ctx, editPath, "hash password", err)
			return
		}

		params.PasswordHash = &passwordHash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_, err := h.store.Update(cctx, id, params)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			h.redirectWithError(ctx, editPath, "Email already in use by another user.")
		case errors.Is(err, user.ErrNotFound):
			h.redirectWithError(ctx, "/users/page", "User not found.")
		default:
			h.unexpected(ctx, editPath, "update user", err)
		}
		return
	}

	h.flash.Add(ctx, flash.SeveritySuccess, "User updated.")
	ctx.Redirect(http.StatusSeeOther, "/users/page")
}

// ConfirmDelete handles GET /users/:id/confirm_delete.
func (h *UsersHandler) ConfirmDelete(ctx *gin.Context) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.redirectWithError(ctx, "/users/page", "User not found.")
			return
		}

		h.unexpected(ctx, "/users/page", "load user", err)
		return
	}

	h.render(ctx, http.StatusOK, "users_confirm_delete.html", gin.H{
		"Title": "Confirm delete",
		"User":  u,
	})
}

// DeleteFromForm handles POST /users/:id/delete.
func (h *UsersHandler) DeleteFromForm(ctx *gin.Context) {
	id, ok := h.userID(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.redirectWithError(ctx, "/users/page", "User not found.")
			return
		}

		h.unexpected(ctx, "/users/page", "delete user", err)
		return
	}

	h.flash.Add(ctx, flash.SeveritySuccess, "User deleted.")
	ctx.Redirect(http.StatusSeeOther, "/users/page")
}

// helpers

// userID parses the :id path segment. A non-numeric id is treated the same
// as a missing row.
func (h *UsersHandler) userID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		h.redirectWithError(ctx, "/users/page", "User not found.")
		return 0, false
	}

	return id, true
}

func (h *UsersHandler) render(ctx *gin.Context, status int, page string, data gin.H) {
	data["Flashes"] = h.flash.Take(ctx)

	ctx.HTML(status, page, data)
}

func (h *UsersHandler) redirectWithError(ctx *gin.Context, location, msg string) {
	h.flash.Add(ctx, flash.SeverityError, msg)
	ctx.Redirect(http.StatusSeeOther, location)
}

// unexpected logs the raw failure server-side and sends the client back with
// a generic message; internals never reach the browser.
func (h *UsersHandler) unexpected(ctx *gin.Context, location, op string, err error) {
	h.log.ErrorContext(ctx.Request.Context(), op+" failed", "err", err)
	h.redirectWithError(ctx, location, "Something went wrong. Please try again.")
}
