package bot

import (
	"strings"
	"testing"
	"time"

	"obzvonbot/internal/domain"
)

var testNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local)

func TestFormatTodayNumbersEmpty(t *testing.T) {
	got := FormatTodayNumbers(testNow, "Toshkent", "Aziz", nil)
	want := "📅 BUGUNGI OBZVON RO'YXATI (14.03.2025)\n\nHech qanday raqam qo'shilmagan."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTodayNumbers(t *testing.T) {
	recs := []domain.NumberRecord{
		{Phone: "+998901234567", Comment: "client callback"},
		{Phone: "+998935554433", Comment: "no answer"},
	}
	got := FormatTodayNumbers(testNow, "Toshkent", "Aziz", recs)

	if !strings.HasPrefix(got, "📅 BUGUNGI OBZVON RO'YXATI (14.03.2025)\n\n") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "Toshkent ✅ Xodim: Aziz ✅\n📋 RAQAMLAR RO'YXATI:") {
		t.Errorf("missing region/employee line: %q", got)
	}
	if !strings.Contains(got, "1. +998901234567 — client callback") {
		t.Errorf("missing first row: %q", got)
	}
	if !strings.Contains(got, "2. +998935554433 — no answer") {
		t.Errorf("missing second row: %q", got)
	}
	if strings.Index(got, "+998901234567") > strings.Index(got, "+998935554433") {
		t.Error("rows out of insertion order")
	}
}

func TestFormatTodayCallsigns(t *testing.T) {
	empty := FormatTodayCallsigns(testNow, "Buxoro", "Bobur", nil)
	if !strings.Contains(empty, "Hech qanday pozivnoy qo'shilmagan.") {
		t.Errorf("missing empty-state text: %q", empty)
	}

	got := FormatTodayCallsigns(testNow, "Buxoro", "Bobur", []domain.CallsignRecord{
		{Callsign: "+998901112233"},
	})
	if !strings.Contains(got, "BUGUNGI QO'SHILGAN POZIVNOY RO'YXATI (14.03.2025)") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "1. +998901112233\n") {
		t.Errorf("missing row: %q", got)
	}
}

func TestFormatEmployeeStatus(t *testing.T) {
	name := "Aziz"
	region := "Toshkent"

	full := FormatEmployeeStatus(&domain.Settings{EmployeeName: &name, Region: &region})
	if !strings.Contains(full, "📝 Ism: Aziz") || !strings.Contains(full, "🏙️ Viloyat: Toshkent") {
		t.Errorf("unexpected full status: %q", full)
	}

	empty := FormatEmployeeStatus(nil)
	if !strings.Contains(empty, "📝 Ism: ❌ Tanlanmagan") || !strings.Contains(empty, "🏙️ Viloyat: ❌ Tanlanmagan") {
		t.Errorf("unexpected empty status: %q", empty)
	}
}
