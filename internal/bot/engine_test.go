package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"obzvonbot/internal/domain"
	"obzvonbot/internal/service"
)

var engineRegions = []string{"Toshkent", "Samarqand", "Buxoro"}

type sentMsg struct {
	userID int64
	text   string
	menu   Menu
}

// fakeChannel records sends and deletes, handing out incrementing ids.
type fakeChannel struct {
	sent    []sentMsg
	deleted []int
	nextID  int
}

func (f *fakeChannel) Send(_ context.Context, userID int64, text string, menu Menu) (int, error) {
	f.nextID++
	f.sent = append(f.sent, sentMsg{userID: userID, text: text, menu: menu})
	return f.nextID, nil
}

func (f *fakeChannel) Delete(_ context.Context, _ int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeChannel) last(t *testing.T) sentMsg {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("no messages sent")
	}
	return f.sent[len(f.sent)-1]
}

// engineStore is an in-memory store with the SQL layer's merge semantics.
type engineStore struct {
	settings  map[int64]*domain.Settings
	numbers   []domain.NumberRecord
	callsigns []domain.CallsignRecord
}

func newEngineStore() *engineStore {
	return &engineStore{settings: make(map[int64]*domain.Settings)}
}

func (m *engineStore) Settings(_ context.Context, userID int64) (*domain.Settings, error) {
	s, ok := m.settings[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *engineStore) SaveSettings(_ context.Context, userID int64, username, fullName string, employeeName, region *string) error {
	s, ok := m.settings[userID]
	if !ok {
		s = &domain.Settings{UserID: userID}
		m.settings[userID] = s
	}
	s.Username = username
	s.FullName = fullName
	if employeeName != nil {
		s.EmployeeName = employeeName
	}
	if region != nil {
		s.Region = region
	}
	return nil
}

func (m *engineStore) SaveNumber(_ context.Context, rec *domain.NumberRecord) error {
	rec.ID = int64(len(m.numbers) + 1)
	rec.CreatedDate = time.Now()
	m.numbers = append(m.numbers, *rec)
	return nil
}

func (m *engineStore) SaveCallsign(_ context.Context, rec *domain.CallsignRecord) error {
	rec.ID = int64(len(m.callsigns) + 1)
	rec.CreatedDate = time.Now()
	m.callsigns = append(m.callsigns, *rec)
	return nil
}

func (m *engineStore) TodayNumbers(_ context.Context, userID int64) ([]domain.NumberRecord, error) {
	var out []domain.NumberRecord
	for _, r := range m.numbers {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *engineStore) TodayCallsigns(_ context.Context, userID int64) ([]domain.CallsignRecord, error) {
	var out []domain.CallsignRecord
	for _, r := range m.callsigns {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type engineFixture struct {
	engine *Engine
	ch     *fakeChannel
	store  *engineStore
	msgID  int
}

func newEngineFixture() *engineFixture {
	store := newEngineStore()
	settings := service.NewSettings(store, engineRegions)
	records := service.NewRecords(store, settings)
	ch := &fakeChannel{nextID: 100}
	return &engineFixture{
		engine: NewEngine(ch, settings, records, "+998"),
		ch:     ch,
		store:  store,
	}
}

func (f *engineFixture) user(t *testing.T, userID int64, text string) {
	t.Helper()
	f.msgID++
	err := f.engine.Handle(context.Background(), Incoming{
		UserID:    userID,
		MessageID: f.msgID,
		Text:      text,
		Username:  "tester",
		FullName:  "Test User",
	})
	if err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
}

func TestStartShowsMainMenu(t *testing.T) {
	f := newEngineFixture()
	f.user(t, 1, "/start")

	got := f.ch.last(t)
	if got.text != msgMainMenu || got.menu != MenuMain {
		t.Errorf("got (%q, %v), want main menu", got.text, got.menu)
	}
	if f.store.settings[1] == nil {
		t.Error("start must create the settings row")
	}
	if st := f.engine.sessions.State(1); st != StateIdle {
		t.Errorf("state = %v, want idle", st)
	}
}

func TestWriteNumberBlockedWithoutSettings(t *testing.T) {
	f := newEngineFixture()
	f.user(t, 1, "/start")
	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnWriteNumber)

	got := f.ch.last(t)
	if got.text != msgNeedSettings || got.menu != MenuMain {
		t.Errorf("got (%q, %v), want settings gate message with main menu", got.text, got.menu)
	}
	if st := f.engine.sessions.State(1); st != StateIdle {
		t.Errorf("state = %v, want idle after gate refusal", st)
	}
}

func TestFullNumberFlow(t *testing.T) {
	f := newEngineFixture()
	f.user(t, 1, "/start")

	// Fill in settings through the employee section.
	f.user(t, 1, BtnEmployeeSection)
	f.user(t, 1, BtnEmployeeName)
	if st := f.engine.sessions.State(1); st != StateAwaitingEmployeeName {
		t.Fatalf("state = %v, want awaiting employee name", st)
	}
	f.user(t, 1, "Aziz")
	if got := f.ch.last(t); got.text != FormatEmployeeNameSaved("Aziz") || got.menu != MenuEmployee {
		t.Fatalf("name confirmation = (%q, %v)", got.text, got.menu)
	}
	f.user(t, 1, BtnRegions)
	if got := f.ch.last(t); got.menu != MenuRegions {
		t.Fatalf("expected region picker, got menu %v", got.menu)
	}
	f.user(t, 1, "Toshkent")
	if got := f.ch.last(t); got.text != FormatRegionSaved("Toshkent") {
		t.Fatalf("region confirmation = %q", got.text)
	}

	// Enter the number flow.
	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnWriteNumber)
	if got := f.ch.last(t); got.text != msgAskPhone || got.menu != MenuRemove {
		t.Fatalf("phone prompt = (%q, %v)", got.text, got.menu)
	}
	f.user(t, 1, "901234567")
	if got := f.ch.last(t); got.text != msgAskComment {
		t.Fatalf("comment prompt = %q", got.text)
	}
	f.user(t, 1, "client callback")

	got := f.ch.last(t)
	if !strings.Contains(got.text, "+998901234567") || !strings.Contains(got.text, "client callback") {
		t.Errorf("confirmation must echo phone and comment: %q", got.text)
	}
	if got.menu != MenuNumbers {
		t.Errorf("confirmation menu = %v, want numbers submenu", got.menu)
	}
	if st := f.engine.sessions.State(1); st != StateIdle {
		t.Errorf("state = %v, want idle after completion", st)
	}

	if len(f.store.numbers) != 1 {
		t.Fatalf("stored %d records, want 1", len(f.store.numbers))
	}
	rec := f.store.numbers[0]
	if rec.Phone != "+998901234567" || rec.Comment != "client callback" ||
		rec.Region != "Toshkent" || rec.EmployeeName != "Aziz" {
		t.Errorf("stored record = %+v", rec)
	}
}

func TestInvalidPhoneReprompts(t *testing.T) {
	f := newEngineFixture()
	seedSettings(f, 1)
	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnWriteNumber)

	f.user(t, 1, "no digits here")
	if got := f.ch.last(t); got.text != msgBadPhone {
		t.Errorf("got %q, want re-prompt", got.text)
	}
	if st := f.engine.sessions.State(1); st != StateAwaitingPhone {
		t.Errorf("state = %v, want still awaiting phone", st)
	}
	if f.engine.sessions.PendingPhone(1) != "" {
		t.Error("scratch phone must stay empty after invalid input")
	}
}

func TestCallsignFlow(t *testing.T) {
	f := newEngineFixture()
	seedSettings(f, 1)
	f.user(t, 1, BtnCallsignsSection)
	f.user(t, 1, BtnAddCallsign)
	if st := f.engine.sessions.State(1); st != StateAwaitingCallsign {
		t.Fatalf("state = %v, want awaiting callsign", st)
	}
	f.user(t, 1, "935554433")

	got := f.ch.last(t)
	if !strings.Contains(got.text, "+998935554433") || got.menu != MenuCallsigns {
		t.Errorf("confirmation = (%q, %v)", got.text, got.menu)
	}
	if len(f.store.callsigns) != 1 || f.store.callsigns[0].Callsign != "+998935554433" {
		t.Errorf("stored callsigns = %+v", f.store.callsigns)
	}
}

func TestBackButtonInterruptsFlow(t *testing.T) {
	f := newEngineFixture()
	seedSettings(f, 1)
	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnWriteNumber)
	f.user(t, 1, "901234567")
	if st := f.engine.sessions.State(1); st != StateAwaitingComment {
		t.Fatalf("state = %v, want awaiting comment", st)
	}

	f.user(t, 1, BtnBackMain)
	got := f.ch.last(t)
	if got.text != msgMainMenu || got.menu != MenuMain {
		t.Errorf("got (%q, %v), want main menu", got.text, got.menu)
	}
	if st := f.engine.sessions.State(1); st != StateIdle {
		t.Errorf("state = %v, want idle after interrupt", st)
	}
	if len(f.store.numbers) != 0 {
		t.Error("interrupted flow must not persist a record")
	}
}

func TestTodayListingEmptyThenFilled(t *testing.T) {
	f := newEngineFixture()
	seedSettings(f, 1)

	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnTodayNumbers)
	if got := f.ch.last(t); !strings.Contains(got.text, "Hech qanday raqam qo'shilmagan.") {
		t.Errorf("empty listing = %q", got.text)
	}

	f.user(t, 1, BtnWriteNumber)
	f.user(t, 1, "901234567")
	f.user(t, 1, "client callback")

	f.user(t, 1, BtnTodayNumbers)
	got := f.ch.last(t)
	if !strings.Contains(got.text, "1. +998901234567 — client callback") {
		t.Errorf("listing after save = %q", got.text)
	}
}

func TestMenuCommandRunsCleanup(t *testing.T) {
	f := newEngineFixture()

	// Each menu turn deletes its own inbound message during the cleanup
	// pass, before the reply is sent.
	f.user(t, 1, "/start") // bot msg 101
	if len(f.ch.deleted) != 1 || f.ch.deleted[0] != 1 {
		t.Fatalf("deleted %v, want the /start message itself", f.ch.deleted)
	}

	f.user(t, 1, BtnEmployeeSection) // bot 101 survives as latest; bot msg 102
	if len(f.ch.deleted) != 2 || f.ch.deleted[1] != 2 {
		t.Fatalf("deleted %v, want user messages 1 and 2", f.ch.deleted)
	}

	f.user(t, 1, BtnBackMain) // deletes user msg 3 and bot 101, keeps 102
	want := map[int]bool{1: true, 2: true, 3: true, 101: true}
	if len(f.ch.deleted) != len(want) {
		t.Fatalf("deleted %v, want ids 1,2,3,101", f.ch.deleted)
	}
	for _, id := range f.ch.deleted {
		if !want[id] {
			t.Errorf("unexpected delete of %d", id)
		}
	}
}

func TestPromptChainedInputSkipsCleanup(t *testing.T) {
	f := newEngineFixture()
	seedSettings(f, 1)
	f.user(t, 1, BtnNumbersSection)
	f.user(t, 1, BtnWriteNumber)
	deletesBefore := len(f.ch.deleted)

	f.user(t, 1, "901234567")
	f.user(t, 1, "client callback")
	if len(f.ch.deleted) != deletesBefore {
		t.Errorf("prompt-chained turns ran cleanup: %v", f.ch.deleted[deletesBefore:])
	}
}

func TestUnknownTextFallsBackToMainMenu(t *testing.T) {
	f := newEngineFixture()
	f.user(t, 1, "/start")
	f.user(t, 1, "what do I do")

	got := f.ch.last(t)
	if got.text != msgMainMenu || got.menu != MenuMain {
		t.Errorf("got (%q, %v), want main menu fallback", got.text, got.menu)
	}
}

// seedSettings stores a complete profile directly, bypassing the dialogs.
func seedSettings(f *engineFixture, userID int64) {
	name := "Aziz"
	region := "Toshkent"
	_ = f.store.SaveSettings(context.Background(), userID, "tester", "Test User", &name, &region)
}
