package db

import (
	"testing"
)

func TestStringArray_ScanValue(t *testing.T) {
	var a StringArray
	if err := a.Scan([]byte(`["go","postgres"]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(a) != 2 || a[0] != "go" || a[1] != "postgres" {
		t.Errorf("unexpected scan result: %v", a)
	}

	v, err := a.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if string(v.([]byte)) != `["go","postgres"]` {
		t.Errorf("unexpected value: %s", v)
	}
}

func TestStringArray_NilValue(t *testing.T) {
	var a StringArray
	v, err := a.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil array should serialize as [], got %s", v)
	}
}

func TestJSONMap_ScanValue(t *testing.T) {
	var m JSONMap
	if err := m.Scan([]byte(`{"email_on_update":true}`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if m["email_on_update"] != true {
		t.Errorf("unexpected scan result: %v", m)
	}

	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("nil scan should produce empty map, got %v", m)
	}
}
