package bot

import (
	"fmt"
	"strings"
	"time"

	"obzvonbot/internal/domain"
)

const displayDate = "02.01.2006"

// FormatTodayNumbers renders the day's number records. The day is taken
// from now in local time; records are printed in the order given.
func FormatTodayNumbers(now time.Time, region, employeeName string, recs []domain.NumberRecord) string {
	today := now.Format(displayDate)
	if len(recs) == 0 {
		return fmt.Sprintf("📅 BUGUNGI OBZVON RO'YXATI (%s)\n\nHech qanday raqam qo'shilmagan.", today)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 BUGUNGI OBZVON RO'YXATI (%s)\n\n", today)
	fmt.Fprintf(&b, "%s ✅ Xodim: %s ✅\n📋 RAQAMLAR RO'YXATI:\n\n", region, employeeName)
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s — %s\n\n", i+1, rec.Phone, rec.Comment)
	}
	return b.String()
}

// FormatTodayCallsigns renders the day's callsign records.
func FormatTodayCallsigns(now time.Time, region, employeeName string, recs []domain.CallsignRecord) string {
	today := now.Format(displayDate)
	if len(recs) == 0 {
		return fmt.Sprintf("📅 BUGUNGI QO'SHILGAN POZIVNOY RO'YXATI (%s)\n\nHech qanday pozivnoy qo'shilmagan.", today)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 BUGUNGI QO'SHILGAN POZIVNOY RO'YXATI (%s)\n\n", today)
	fmt.Fprintf(&b, "%s ✅ Xodim: %s ✅\n\n", region, employeeName)
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec.Callsign)
	}
	return b.String()
}

// FormatNumberSaved is the confirmation shown after a number+comment pair
// is persisted.
func FormatNumberSaved(phone, comment string) string {
	return fmt.Sprintf("✅ Raqam saqlandi!\n\n📞: %s\n💬: %s\n\nYangi raqam yuboring yoki menyuga qayting:", phone, comment)
}

// FormatCallsignSaved is the confirmation shown after a callsign is persisted.
func FormatCallsignSaved(callsign string) string {
	return fmt.Sprintf("✅ Pozivnoy saqlandi!\n\n🚖: %s\n\nYangi pozivnoy yuboring yoki menyuga qayting:", callsign)
}

// FormatEmployeeStatus renders the employee section header with the
// currently stored name and region, marking missing values.
func FormatEmployeeStatus(s *domain.Settings) string {
	var b strings.Builder
	b.WriteString("👤 XODIM bo'limi\n\n")
	if name := s.EmployeeNameValue(); name != "" {
		fmt.Fprintf(&b, "📝 Ism: %s\n", name)
	} else {
		b.WriteString("📝 Ism: ❌ Tanlanmagan\n")
	}
	if region := s.RegionValue(); region != "" {
		fmt.Fprintf(&b, "🏙️ Viloyat: %s\n", region)
	} else {
		b.WriteString("🏙️ Viloyat: ❌ Tanlanmagan")
	}
	return b.String()
}

// FormatEmployeeNameSaved confirms a stored employee name.
func FormatEmployeeNameSaved(name string) string {
	return fmt.Sprintf("✅ Xodim ismi saqlandi: %s", name)
}

// FormatRegionSaved confirms a stored region.
func FormatRegionSaved(region string) string {
	return fmt.Sprintf("✅ Viloyat saqlandi: %s", region)
}
