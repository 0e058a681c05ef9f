package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/internal/infrastructure/memory"
	"github.com/coslynx/fitness-tracker/internal/interface/middleware"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
)

func newUserRouter() (*gin.Engine, *application.UserService) {
	svc := &application.UserService{
		Repo:       memory.NewUserRepository(),
		JWT:        helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour),
		BcryptCost: 4,
	}
	cookies := helpers.NewCookie("localhost", false)
	userHandler := NewUserHandler(svc)
	authHandler := NewAuthHandler(svc, cookies)
	auth := middleware.Auth(svc.JWT, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/users", userHandler.Register)
	api.POST("/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(auth)
	protected.GET("/users", userHandler.List)
	protected.GET("/users/:id", userHandler.Get)
	protected.PUT("/users/:id", userHandler.Update)
	protected.DELETE("/users/:id", userHandler.Delete)
	protected.GET("/profile", userHandler.Me)
	protected.POST("/logout", authHandler.Logout)
	return r, svc
}

func TestRegisterReturns201WithoutPassword(t *testing.T) {
	r, _ := newUserRouter()

	w := doJSON(t, r, http.MethodPost, "/api/users",
		`{"email":"a@b.c","password":"testPassword123","name":"Alice"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "assword") {
		t.Fatalf("response must not leak the password field: %s", w.Body.String())
	}
	var got entity.User
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID == "" || got.Email != "a@b.c" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, _ := newUserRouter()

	w := doJSON(t, r, http.MethodPost, "/api/users",
		`{"email":"a@b.c","password":"short","name":"Alice"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	r, _ := newUserRouter()

	doJSON(t, r, http.MethodPost, "/api/users", `{"email":"a@b.c","password":"testPassword123","name":"Alice"}`)
	w := doJSON(t, r, http.MethodPost, "/api/users", `{"email":"a@b.c","password":"otherPassword456","name":"Bob"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestLoginSetsCookiesAndAuthorizesRequests(t *testing.T) {
	r, _ := newUserRouter()

	doJSON(t, r, http.MethodPost, "/api/users", `{"email":"a@b.c","password":"testPassword123","name":"Alice"}`)

	w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"a@b.c","password":"testPassword123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	var access *http.Cookie
	for _, c := range cookies {
		if c.Name == "access_token" {
			access = c
		}
	}
	if access == nil || access.Value == "" {
		t.Fatal("expected access_token cookie after login")
	}
	if !access.HttpOnly {
		t.Fatal("access_token cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(access)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body: %s", w2.Code, w2.Body.String())
	}
	var me entity.User
	_ = json.Unmarshal(w2.Body.Bytes(), &me)
	if me.Email != "a@b.c" {
		t.Fatalf("profile = %+v", me)
	}
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	r, _ := newUserRouter()

	doJSON(t, r, http.MethodPost, "/api/users", `{"email":"a@b.c","password":"testPassword123","name":"Alice"}`)
	w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"a@b.c","password":"wrongPassword"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401, body: %s", w.Code, w.Body.String())
	}
	want := `{"error":"invalid credentials"}`
	if w.Body.String() != want {
		t.Fatalf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestUpdateAnotherUserRejected(t *testing.T) {
	r, svc := newUserRouter()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	alice, _ := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")
	bob, _ := svc.Register(ctx, "b@b.c", "testPassword123", "Bob")

	pair, _ := svc.IssueTokens(ctx, alice)
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+bob.ID, strings.NewReader(`{"name":"Hacked"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: pair.AccessToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401, body: %s", w.Code, w.Body.String())
	}
	stored, _ := svc.Get(ctx, bob.ID)
	if stored.Name != "Bob" {
		t.Fatal("foreign update must not modify the account")
	}
}

func TestDeleteOwnAccountReturns204(t *testing.T) {
	r, svc := newUserRouter()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	alice, _ := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")
	pair, _ := svc.IssueTokens(ctx, alice)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+alice.ID, nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: pair.AccessToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body: %s", w.Code, w.Body.String())
	}
	if _, err := svc.Get(ctx, alice.ID); err == nil {
		t.Fatal("account should be gone after delete")
	}
}
