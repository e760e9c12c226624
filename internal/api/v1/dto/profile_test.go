package dto

import (
	"encoding/json"
	"testing"
)

func TestProfileUpdateDTOFields(t *testing.T) {
	var d ProfileUpdateDTO
	if err := json.Unmarshal([]byte(`{"full_name":"Alice","bio":"Lawyer"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	fields := d.Fields()
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want exactly full_name and bio", fields)
	}
	if fields["full_name"] != "Alice" || fields["bio"] != "Lawyer" {
		t.Errorf("unexpected field values: %v", fields)
	}
}

func TestProfileUpdateDTOFieldsEmpty(t *testing.T) {
	var d ProfileUpdateDTO
	if fields := d.Fields(); len(fields) != 0 {
		t.Errorf("empty DTO produced fields: %v", fields)
	}
}

func TestSubscriptionUpdateDTOFields(t *testing.T) {
	var d SubscriptionUpdateDTO
	if err := json.Unmarshal([]byte(`{"plan_type":"pro","amount":499.0,"credits_total":99999}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	fields := d.Fields()
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want exactly plan_type and amount", fields)
	}
	if fields["plan_type"] != "pro" || fields["amount"] != 499.0 {
		t.Errorf("unexpected field values: %v", fields)
	}
	// There is no way to smuggle credit counters through this DTO.
	if _, ok := fields["credits_total"]; ok {
		t.Error("credits_total leaked into update fields")
	}
}
