package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shashiranjanraj/cozyloom/app/models"
)

func TestTimestampMarshalFormat(t *testing.T) {
	ts := models.Timestamp{Time: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}

	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2026-03-14 09:26:53"` {
		t.Errorf("unexpected wire format: %s", out)
	}
}

func TestNilFulfillmentDateIsNull(t *testing.T) {
	order := models.DistributorOrder{
		ID:               1,
		SellerID:         4,
		BlanketModelID:   2,
		BlanketModelName: "Cloud Nine",
		Quantity:         3,
		Status:           models.OrderPending,
		OrderDate:        models.Now(),
	}

	out, err := json.Marshal(order)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if string(decoded["fulfillment_date"]) != "null" {
		t.Errorf("pending order must serialize fulfillment_date as null, got %s", decoded["fulfillment_date"])
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	in := models.Timestamp{Time: time.Date(2026, 8, 29, 23, 59, 1, 0, time.UTC)}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out models.Timestamp
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in.Time) {
		t.Errorf("round trip changed the value: %v != %v", out, in)
	}
}

func TestTimestampScanText(t *testing.T) {
	var ts models.Timestamp
	if err := ts.Scan("2026-01-02 03:04:05"); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("scanned %v, want %v", ts.Time, want)
	}
}

func TestTerminalStates(t *testing.T) {
	if models.OrderPending.Terminal() {
		t.Error("pending is not terminal")
	}
	if !models.OrderFulfilled.Terminal() || !models.OrderCancelled.Terminal() {
		t.Error("fulfilled and cancelled are terminal")
	}
}
