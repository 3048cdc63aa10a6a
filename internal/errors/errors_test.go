package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPErrorCategories(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCategory
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{403, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{502, Recoverable},
		{503, Recoverable},
	}
	for _, tc := range cases {
		got := getHTTPErrorCategory(tc.status)
		if got != tc.want {
			t.Errorf("status %d: category = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail": "Country not supported"}`)); got != "Country not supported" {
		t.Fatalf("detail = %q", got)
	}
	if got := extractDetail(nil); got != "" {
		t.Fatalf("detail for nil body = %q", got)
	}
	if got := extractDetail([]byte("<html>gateway timeout</html>")); got != "" {
		t.Fatalf("detail for html body = %q", got)
	}
	if got := extractDetail([]byte(`{"message": "other shape"}`)); got != "" {
		t.Fatalf("detail for foreign shape = %q", got)
	}
}

func TestUserMessagePrefersServerDetail(t *testing.T) {
	withDetail := NewHTTPError(400, []byte(`{"detail": "Please select a state"}`), "generate outfit")
	if got := UserMessage(withDetail, "Generation failed."); got != "Please select a state" {
		t.Fatalf("message = %q", got)
	}

	noDetail := NewHTTPError(500, nil, "generate outfit")
	if got := UserMessage(noDetail, "Generation failed."); got != "Generation failed." {
		t.Fatalf("message = %q", got)
	}

	if got := UserMessage(errors.New("plain"), "fallback"); got != "fallback" {
		t.Fatalf("message = %q", got)
	}
}

func TestIsIrrecoverable(t *testing.T) {
	if !IsIrrecoverable(NewHTTPError(403, nil, "op")) {
		t.Fatal("403 should be irrecoverable")
	}
	if IsIrrecoverable(NewHTTPError(500, nil, "op")) {
		t.Fatal("500 should be recoverable")
	}
	if IsIrrecoverable(NewNetworkError("op", errors.New("refused"))) {
		t.Fatal("network errors should be recoverable")
	}
	if IsIrrecoverable(errors.New("plain")) {
		t.Fatal("unclassified errors should not report irrecoverable")
	}
}

func TestNetworkErrorShape(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewNetworkError("list wardrobe", underlying)
	if !IsNetwork(err) {
		t.Fatal("IsNetwork false")
	}
	if err.StatusCode != 0 {
		t.Fatalf("status = %d, want 0", err.StatusCode)
	}
	if !errors.Is(err, underlying) {
		t.Fatal("unwrap chain broken")
	}
}

func TestClassifiedErrorString(t *testing.T) {
	err := NewHTTPError(502, nil, "generate outfit")
	want := fmt.Sprintf("[%s] HTTP %d", Recoverable, 502)
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Fatalf("error = %q, want prefix %q", got, want)
	}
}
