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
	"github.com/coslynx/fitness-tracker/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// stubAuth plays the role of the session middleware for handler tests.
func stubAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newGoalRouter(userID string) (*gin.Engine, *memory.Repository[*entity.Goal]) {
	repo := memory.NewRepository[*entity.Goal]()
	svc := application.NewResource[*entity.Goal, entity.GoalPatch]("Goal", repo, nil, nil)
	h := NewGoalHandler(svc)

	r := gin.New()
	g := r.Group("/api/goals")
	g.Use(stubAuth(userID))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGoalReturns201(t *testing.T) {
	r, _ := newGoalRouter("user-1")

	w := doJSON(t, r, http.MethodPost, "/api/goals",
		`{"title":"Lose 10 pounds","description":"Cut for summer","target":10,"deadline":"2026-12-31T00:00:00Z"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}
	var got entity.Goal
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id in response")
	}
	if got.Title != "Lose 10 pounds" || got.UserID != "user-1" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateGoalRejectsInvalidPayload(t *testing.T) {
	r, _ := newGoalRouter("user-1")

	w := doJSON(t, r, http.MethodPost, "/api/goals", `{"title":"","target":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("expected error body, got %s", w.Body.String())
	}
}

func TestUpdateMissingGoalBody(t *testing.T) {
	r, _ := newGoalRouter("user-1")

	w := doJSON(t, r, http.MethodPut, "/api/goals/missing", `{"title":"anything"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	want := `{"error":"Goal with ID missing not found."}`
	if w.Body.String() != want {
		t.Fatalf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestUpdateGoalMergesPatch(t *testing.T) {
	r, _ := newGoalRouter("user-1")

	w := doJSON(t, r, http.MethodPost, "/api/goals",
		`{"title":"Run","description":"weekly","target":5,"deadline":"2026-12-31T00:00:00Z"}`)
	var created entity.Goal
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, r, http.MethodPut, "/api/goals/"+created.ID, `{"target":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	var updated entity.Goal
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Target != 10 {
		t.Fatalf("target = %v, want 10", updated.Target)
	}
	if updated.Title != "Run" || updated.Description != "weekly" {
		t.Fatal("absent fields must keep prior values")
	}
}

func TestDeleteGoalReturns204(t *testing.T) {
	r, _ := newGoalRouter("user-1")

	w := doJSON(t, r, http.MethodPost, "/api/goals",
		`{"title":"Run","target":5,"deadline":"2026-12-31T00:00:00Z"}`)
	var created entity.Goal
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, r, http.MethodDelete, "/api/goals/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/goals/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", w.Code)
	}
}

func TestListReturnsOnlyCallersGoals(t *testing.T) {
	repo := memory.NewRepository[*entity.Goal]()
	svc := application.NewResource[*entity.Goal, entity.GoalPatch]("Goal", repo, nil, nil)
	h := NewGoalHandler(svc)

	r := gin.New()
	// each owner goes through its own route so the stub can vary
	r.POST("/as/:uid/goals", func(c *gin.Context) {
		c.Set("userID", c.Param("uid"))
		h.Create(c)
	})
	r.GET("/as/:uid/goals", func(c *gin.Context) {
		c.Set("userID", c.Param("uid"))
		h.List(c)
	})

	doJSON(t, r, http.MethodPost, "/as/user-1/goals", `{"title":"a","target":1,"deadline":"2026-12-31T00:00:00Z"}`)
	doJSON(t, r, http.MethodPost, "/as/user-2/goals", `{"title":"b","target":2,"deadline":"2026-12-31T00:00:00Z"}`)

	w := doJSON(t, r, http.MethodGet, "/as/user-1/goals", "")
	var got []entity.Goal
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("expected only user-1's goal, got %+v", got)
	}
}

func TestUnauthenticatedRequestNeverTouchesStore(t *testing.T) {
	repo := memory.NewRepository[*entity.Goal]()
	svc := application.NewResource[*entity.Goal, entity.GoalPatch]("Goal", repo, nil, nil)
	h := NewGoalHandler(svc)

	jwtMgr := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	r := gin.New()
	g := r.Group("/api/goals")
	g.Use(middleware.Auth(jwtMgr, nil))
	g.GET("", h.List)

	w := doJSON(t, r, http.MethodGet, "/api/goals", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if repo.Accesses != 0 {
		t.Fatalf("store accessed %d times on an unauthenticated request", repo.Accesses)
	}
}
