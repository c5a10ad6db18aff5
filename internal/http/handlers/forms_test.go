package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindOnce(t *testing.T, body string) (msg string, ok bool, form userForm) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/", func(ctx *gin.Context) {
		msg, ok = bindForm(ctx, &form)
		ctx.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return msg, ok, form
}

func TestBindForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		msg, ok, form := bindOnce(t, "name=Ana&email=ana%40example.com&password=s3cret")

		if !ok {
			t.Fatalf("expected ok, got message %q", msg)
		}

		if form.Name != "Ana" || form.Email != "ana@example.com" {
			t.Fatalf("unexpected form: %+v", form)
		}

		if form.password() != "s3cret" {
			t.Fatalf("unexpected password: %q", form.password())
		}
	})

	t.Run("senha_is_a_password_alias", func(t *testing.T) {
		_, ok, form := bindOnce(t, "name=Ana&email=ana%40example.com&senha=s3cret")

		if !ok {
			t.Fatal("expected ok")
		}

		if form.password() != "s3cret" {
			t.Fatalf("unexpected password: %q", form.password())
		}
	})

	t.Run("bad_email_format", func(t *testing.T) {
		msg, ok, _ := bindOnce(t, "name=Ana&email=nope&password=s3cret")

		if ok {
			t.Fatal("expected a binding failure")
		}

		if !strings.Contains(msg, "valid email address") {
			t.Fatalf("unexpected message: %q", msg)
		}
	})

	t.Run("empty_fields_bind_fine", func(t *testing.T) {
		// presence is the handler's concern, not the binder's
		_, ok, _ := bindOnce(t, "")

		if !ok {
			t.Fatal("an empty form must bind; presence checks happen later")
		}
	})
}
