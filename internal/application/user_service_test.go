package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/internal/infrastructure/memory"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
)

func newUserService() *UserService {
	return &UserService{
		Repo:       memory.NewUserRepository(),
		JWT:        helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour),
		BcryptCost: 4,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}
	if u.Password == "testPassword123" {
		t.Fatal("password must be stored hashed")
	}
	if !strings.HasPrefix(u.Password, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", u.Password)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.c", "testPassword123", "Alice"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "a@b.c", "otherPassword456", "Impostor")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "a@b.c", "testPassword123", "Alice")

	if _, err := svc.Authenticate(ctx, "a@b.c", "testPassword123"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}

	_, err := svc.Authenticate(ctx, "a@b.c", "wrong")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("wrong password kind = %v, want unauthorized", apperr.KindOf(err))
	}
	_, err = svc.Authenticate(ctx, "nobody@b.c", "testPassword123")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("unknown email kind = %v, want unauthorized", apperr.KindOf(err))
	}
}

func TestIssueTokensWithoutRedis(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")

	pair, err := svc.IssueTokens(ctx, u)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("uid = %q, want %q", claims.UserID, u.ID)
	}
	if claims.SessionID == "" {
		t.Fatal("expected session id in claims")
	}
}

func TestGetMissingUserMessage(t *testing.T) {
	svc := newUserService()
	_, err := svc.Get(context.Background(), "missing")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
	want := "User with ID missing not found."
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")

	newPwd := "freshPassword456"
	updated, err := svc.Update(ctx, u.ID, entity.UserPatch{Password: &newPwd})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password == newPwd {
		t.Fatal("updated password must be stored hashed")
	}
	if _, err := svc.Authenticate(ctx, "a@b.c", newPwd); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestDeleteMissingUserSucceeds(t *testing.T) {
	svc := newUserService()
	if err := svc.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("delete of a missing user must succeed, got %v", err)
	}
}

func TestUpsertOAuthUserReusesExistingAccount(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, "a@b.c", "testPassword123", "Alice")

	got, err := svc.UpsertOAuthUser(ctx, "a@b.c", "Alice G")
	if err != nil {
		t.Fatalf("UpsertOAuthUser: %v", err)
	}
	if got.ID != u.ID {
		t.Fatal("existing account must be reused, not duplicated")
	}

	fresh, err := svc.UpsertOAuthUser(ctx, "new@b.c", "Newcomer")
	if err != nil {
		t.Fatalf("UpsertOAuthUser new: %v", err)
	}
	if fresh.ID == "" || fresh.ID == u.ID {
		t.Fatalf("expected a distinct new account, got %+v", fresh)
	}
}
