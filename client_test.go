package styleai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	apierrors "github.com/styleai/styleai-go/internal/errors"
)

func TestNewRequiresBaseURL(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty base URL")
		}
	}()
	New("")
}

func TestLoginPersistsSessionAndInjectsBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login carried auth header %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["email"] != "ada@example.com" || body["password"] != "hunter2" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"token_type":   "bearer",
			"user":         map[string]any{"name": "Ada", "email": "ada@example.com"},
		})
	})
	mux.HandleFunc("/api/outfit/history", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]any{})
	})
	c := newTestClient(t, mux)

	u, err := c.Login(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Name != "Ada" {
		t.Fatalf("user = %+v", u)
	}
	if sess, ok := c.Session().Current(); !ok || sess.Token != "tok-abc" {
		t.Fatalf("session = %+v ok=%v", sess, ok)
	}

	// The very next call must already carry the token.
	if _, err := c.OutfitHistory(context.Background()); err != nil {
		t.Fatalf("history: %v", err)
	}
}

func TestRegisterPersistsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		for _, k := range []string{"name", "email", "password", "gender", "date_of_birth"} {
			if _, ok := body[k]; !ok {
				t.Errorf("register body missing %q: %v", k, body)
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-new",
			"user":         map[string]any{"name": "Grace", "email": "grace@example.com"},
		})
	})
	c := newTestClient(t, mux)

	u, err := c.Register(context.Background(), RegisterRequest{
		Name: "Grace", Email: "grace@example.com", Password: "pw",
		Gender: "female", DateOfBirth: "1990-12-09",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "grace@example.com" {
		t.Fatalf("user = %+v", u)
	}
	if c.Session().Token() != "tok-new" {
		t.Fatalf("token = %q", c.Session().Token())
	}
}

func TestLogoutClearsSessionBeforeReturning(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())
	signIn(t, c)

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.Session().Token() != "" {
		t.Fatal("token survived logout")
	}
}

func TestLoginBadCredentialsSurfacesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	})
	c := newTestClient(t, mux)

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized = false for %v", err)
	}
	if got := errorMessage(err, "Login failed."); got != "Incorrect email or password" {
		t.Fatalf("message = %q", got)
	}
	if c.Session().Token() != "" {
		t.Fatal("failed login left a token behind")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsValidation(&ValidationError{Msg: "missing fields"}) {
		t.Fatal("IsValidation false for ValidationError")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("IsValidation true for plain error")
	}

	netErr := apierrors.NewNetworkError("op", errors.New("refused"))
	if !IsNetworkError(netErr) {
		t.Fatal("IsNetworkError false for network error")
	}
	if IsNetworkError(apierrors.NewHTTPError(500, nil, "op")) {
		t.Fatal("IsNetworkError true for HTTP 500")
	}
	if !IsNotFound(apierrors.NewHTTPError(404, nil, "op")) {
		t.Fatal("IsNotFound false for 404")
	}
	if !IsUnauthorized(apierrors.NewHTTPError(401, nil, "op")) {
		t.Fatal("IsUnauthorized false for 401")
	}
}
