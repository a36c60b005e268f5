package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Provider: "wickspin", Endpoint: "/playerService/queryEvents", StatusCode: 403, Message: "session expired"}
	got := err.Error()
	for _, want := range []string{"wickspin", "queryEvents", "session expired", "status=403"} {
		if !strings.Contains(got, want) {
			t.Fatalf("error %q missing %q", got, want)
		}
	}

	bare := &FetchError{Provider: "wickspin", Endpoint: "/x"}
	if !strings.Contains(bare.Error(), "upstream fetch failed") {
		t.Fatalf("unexpected default message %q", bare.Error())
	}
}

func TestAsFetchError(t *testing.T) {
	inner := &FetchError{Provider: "wickspin", Endpoint: "/x", StatusCode: 500}
	wrapped := fmt.Errorf("cycle failed: %w", inner)

	fe, ok := AsFetchError(wrapped)
	if !ok || fe.StatusCode != 500 {
		t.Fatalf("unwrap failed: %v %v", fe, ok)
	}

	if _, ok := AsFetchError(errors.New("plain")); ok {
		t.Fatal("plain error must not unwrap")
	}
}
