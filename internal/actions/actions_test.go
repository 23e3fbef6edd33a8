package actions_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/pdfbridge/internal/actions"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType actions.Type
	}{
		{"goto", `{"actionType":"goTo","pageIndex":3}`, actions.TypeGoTo},
		{"uri", `{"actionType":"uri","uri":"https://example.com"}`, actions.TypeURI},
		{"launch passes through", `{"actionType":"launch"}`, actions.TypeLaunch},
		{"unknown discriminator", `{"actionType":"teleport"}`, actions.TypeUnknown},
		{"missing discriminator", `{}`, actions.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := actions.Decode(json.RawMessage(tt.input))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if a.ActionType() != tt.wantType {
				t.Errorf("ActionType() = %q, want %q", a.ActionType(), tt.wantType)
			}
		})
	}
}

func TestDecode_GoToPayload(t *testing.T) {
	a, err := actions.Decode(json.RawMessage(`{"actionType":"goTo","pageIndex":5}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	goTo, ok := a.(*actions.GoTo)
	if !ok {
		t.Fatalf("Decode() = %T, want *actions.GoTo", a)
	}
	if goTo.PageIndex != 5 {
		t.Errorf("PageIndex = %d, want 5", goTo.PageIndex)
	}
}

func TestDecode_Null(t *testing.T) {
	for _, input := range []string{"", "null"} {
		a, err := actions.Decode(json.RawMessage(input))
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", input, err)
		}
		if a != nil {
			t.Errorf("Decode(%q) = %v, want nil", input, a)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := actions.Decode(json.RawMessage(`[1,2]`)); err == nil {
		t.Error("Decode() error = nil, want error for non-object payload")
	}
}

func TestGoTo_Marshal(t *testing.T) {
	a, err := actions.Decode(json.RawMessage(`{"actionType":"goTo","pageIndex":2}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"actionType":"goTo","pageIndex":2}` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestEncode_Constructed(t *testing.T) {
	tests := []struct {
		name   string
		action actions.Action
		want   string
	}{
		{"goto", &actions.GoTo{PageIndex: 3}, `{"actionType":"goTo","pageIndex":3}`},
		{"uri", &actions.URI{URI: "https://example.com"}, `{"actionType":"uri","uri":"https://example.com"}`},
		{"generic", &actions.Generic{Type: actions.TypeNamed}, `{"actionType":"named"}`},
		{"generic without type", &actions.Generic{}, `{"actionType":"unknown"}`},
		{"nil", nil, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := actions.Encode(tt.action)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Encode() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	data, err := json.Marshal(&actions.GoTo{PageIndex: 7})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	a, err := actions.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	g, ok := a.(*actions.GoTo)
	if !ok || g.PageIndex != 7 {
		t.Errorf("Decode() = %#v, want GoTo page 7", a)
	}
}

func TestParseType(t *testing.T) {
	if got := actions.ParseType("javaScript"); got != actions.TypeJavaScript {
		t.Errorf("ParseType() = %q, want %q", got, actions.TypeJavaScript)
	}
	if got := actions.ParseType("JavaScript"); got != actions.TypeUnknown {
		t.Errorf("ParseType() = %q, want %q", got, actions.TypeUnknown)
	}
}
