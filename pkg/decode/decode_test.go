package decode_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/pdfbridge/pkg/decode"
)

type historyState struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

type pageEvent struct {
	PageIndex int `json:"pageIndex"`
}

func TestFromMap_SimpleStruct(t *testing.T) {
	input := map[string]any{
		"canUndo": true,
		"canRedo": false,
	}

	result, err := decode.FromMap[historyState](input)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if !result.CanUndo {
		t.Error("CanUndo = false, want true")
	}

	if result.CanRedo {
		t.Error("CanRedo = true, want false")
	}
}

func TestFromMap_NumericField(t *testing.T) {
	input := map[string]any{"pageIndex": float64(7)}

	result, err := decode.FromMap[pageEvent](input)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if result.PageIndex != 7 {
		t.Errorf("PageIndex = %d, want 7", result.PageIndex)
	}
}

func TestFromMap_NilMap(t *testing.T) {
	result, err := decode.FromMap[historyState](nil)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if result.CanUndo || result.CanRedo {
		t.Errorf("result = %+v, want zero value", result)
	}
}

func TestFromMap_TypeMismatch(t *testing.T) {
	input := map[string]any{"pageIndex": "seven"}

	if _, err := decode.FromMap[pageEvent](input); err == nil {
		t.Error("FromMap() error = nil, want error for mismatched type")
	}
}

func TestRaw(t *testing.T) {
	tests := []struct {
		name    string
		raw     json.RawMessage
		want    int
		wantErr bool
	}{
		{"number", json.RawMessage(`12`), 12, false},
		{"empty", nil, 0, false},
		{"null", json.RawMessage(`null`), 0, false},
		{"wrong type", json.RawMessage(`"x"`), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.Raw[int](tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Raw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Raw() = %d, want %d", got, tt.want)
			}
		})
	}
}
