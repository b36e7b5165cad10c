package enum

import (
	"encoding/json"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{input: "NEW", want: OrderStatusNew},
		{input: "AWAITING", want: OrderStatusAwaiting},
		{input: "COMPLETED", want: OrderStatusCompleted},
		{input: "CANCELED", want: OrderStatusCanceled},
		{input: "CANCELLED", wantErr: true},
		{input: "new", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseOrderStatus(%q): expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrderStatus(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseOrderStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOrderStatuses_Order(t *testing.T) {
	want := []string{"NEW", "AWAITING", "COMPLETED", "CANCELED"}
	got := OrderStatuses()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.String() != want[i] {
			t.Errorf("status[%d] = %s, want %s", i, s, want[i])
		}
	}
}

func TestOrderStatus_ZeroValueInvalid(t *testing.T) {
	var s OrderStatus
	if s.Valid() {
		t.Error("zero OrderStatus should not be valid")
	}
	if _, err := json.Marshal(s); err == nil {
		t.Error("expected marshal error for zero status")
	}
}

func TestOrderStatus_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(struct {
		Status OrderStatus `json:"status"`
	}{OrderStatusAwaiting})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"status":"AWAITING"}` {
		t.Errorf("got %s", b)
	}

	var decoded struct {
		Status OrderStatus `json:"status"`
	}
	if err := json.Unmarshal([]byte(`{"status":"CANCELED"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status != OrderStatusCanceled {
		t.Errorf("status = %v, want CANCELED", decoded.Status)
	}
}
