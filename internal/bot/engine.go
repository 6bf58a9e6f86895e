// Package bot implements the conversation engine: a per-user finite-state
// machine over menu buttons and free text, the message ledger that keeps
// the chat transcript down to one live menu, and the keyboard renderer.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"obzvonbot/core/logger"
	"obzvonbot/internal/phone"
	"obzvonbot/internal/service"
)

// Channel is the outbound chat surface the engine talks to.
type Channel interface {
	// Send delivers text with the given menu keyboard and returns the sent
	// message id for ledger tracking.
	Send(ctx context.Context, userID int64, text string, menu Menu) (int, error)
	Deleter
}

// Incoming is one inbound message, already reduced to the fields the
// engine cares about.
type Incoming struct {
	UserID    int64
	MessageID int
	Text      string
	Username  string
	FullName  string
}

// inputKind is the normalized category of an inbound text.
type inputKind int

const (
	inputText inputKind = iota // free text, no label match
	inputStart
	inputBackMain
	inputNumbersSection
	inputWriteNumber
	inputTodayNumbers
	inputCallsignsSection
	inputAddCallsign
	inputTodayCallsigns
	inputEmployeeSection
	inputEmployeeName
	inputRegions
	inputRegion // member of the configured region list
)

type dispatchKey struct {
	state State
	kind  inputKind
}

type handlerFunc func(ctx context.Context, in Incoming, text string) error

// dispatchEntry pairs a handler with whether the cleanup pass runs before
// it. Cleanup is skipped for handlers chained from a prior prompt so the
// prompt the user is answering stays on screen until the flow finishes.
type dispatchEntry struct {
	name    string
	cleanup bool
	fn      handlerFunc
}

// Engine drives the conversation. One instance serves all users; per-user
// state lives in Sessions and the Ledger.
type Engine struct {
	ch       Channel
	settings *service.Settings
	records  *service.Records
	sessions *Sessions
	ledger   *Ledger
	prefix   string
	now      func() time.Time

	dispatch map[dispatchKey]dispatchEntry
}

// NewEngine wires the conversation engine.
func NewEngine(ch Channel, settings *service.Settings, records *service.Records, phonePrefix string) *Engine {
	e := &Engine{
		ch:       ch,
		settings: settings,
		records:  records,
		sessions: NewSessions(),
		ledger:   NewLedger(),
		prefix:   phonePrefix,
		now:      time.Now,
	}
	e.buildDispatch()
	return e
}

func (e *Engine) buildDispatch() {
	d := make(map[dispatchKey]dispatchEntry)

	allStates := []State{
		StateIdle, StateAwaitingPhone, StateAwaitingComment,
		StateAwaitingCallsign, StateAwaitingEmployeeName,
	}

	// /start and the back button interrupt any in-progress flow.
	for _, st := range allStates {
		d[dispatchKey{st, inputStart}] = dispatchEntry{"start", true, e.handleStart}
		d[dispatchKey{st, inputBackMain}] = dispatchEntry{"main_menu", true, e.handleMainMenu}
	}

	d[dispatchKey{StateIdle, inputNumbersSection}] = dispatchEntry{"numbers_section", true, e.handleNumbersSection}
	d[dispatchKey{StateIdle, inputWriteNumber}] = dispatchEntry{"write_number", true, e.handleWriteNumber}
	d[dispatchKey{StateIdle, inputTodayNumbers}] = dispatchEntry{"today_numbers", true, e.handleTodayNumbers}
	d[dispatchKey{StateIdle, inputCallsignsSection}] = dispatchEntry{"callsigns_section", true, e.handleCallsignsSection}
	d[dispatchKey{StateIdle, inputAddCallsign}] = dispatchEntry{"add_callsign", true, e.handleAddCallsign}
	d[dispatchKey{StateIdle, inputTodayCallsigns}] = dispatchEntry{"today_callsigns", true, e.handleTodayCallsigns}
	d[dispatchKey{StateIdle, inputEmployeeSection}] = dispatchEntry{"employee_section", true, e.handleEmployeeSection}
	d[dispatchKey{StateIdle, inputEmployeeName}] = dispatchEntry{"employee_name", true, e.handleAskEmployeeName}
	d[dispatchKey{StateIdle, inputRegions}] = dispatchEntry{"regions", true, e.handleShowRegions}
	d[dispatchKey{StateIdle, inputRegion}] = dispatchEntry{"region_pick", true, e.handleRegionPick}
	d[dispatchKey{StateIdle, inputText}] = dispatchEntry{"fallback", true, e.handleMainMenu}

	// Prompt-chained handlers: no cleanup, so the question being answered
	// survives until the flow completes.
	d[dispatchKey{StateAwaitingPhone, inputText}] = dispatchEntry{"phone", false, e.handlePhone}
	d[dispatchKey{StateAwaitingComment, inputText}] = dispatchEntry{"comment", false, e.handleComment}
	d[dispatchKey{StateAwaitingCallsign, inputText}] = dispatchEntry{"callsign", false, e.handleCallsign}
	d[dispatchKey{StateAwaitingEmployeeName, inputText}] = dispatchEntry{"employee_name_input", false, e.handleEmployeeNameInput}

	e.dispatch = d
}

// classify maps raw text to its input category.
func (e *Engine) classify(text string) inputKind {
	switch text {
	case "/start":
		return inputStart
	case BtnBackMain:
		return inputBackMain
	case BtnNumbersSection:
		return inputNumbersSection
	case BtnWriteNumber:
		return inputWriteNumber
	case BtnTodayNumbers:
		return inputTodayNumbers
	case BtnCallsignsSection:
		return inputCallsignsSection
	case BtnAddCallsign:
		return inputAddCallsign
	case BtnTodayCallsign:
		return inputTodayCallsigns
	case BtnEmployeeSection:
		return inputEmployeeSection
	case BtnEmployeeName:
		return inputEmployeeName
	case BtnRegions:
		return inputRegions
	}
	if e.settings.IsRegion(text) {
		return inputRegion
	}
	return inputText
}

// HandleStart processes the /start command.
func (e *Engine) HandleStart(ctx context.Context, in Incoming) error {
	in.Text = "/start"
	return e.Handle(ctx, in)
}

// Handle routes one inbound message through the dispatch table. The
// message id is tracked before anything else so even failed turns get
// cleaned up later.
func (e *Engine) Handle(ctx context.Context, in Incoming) error {
	e.ledger.TrackUser(in.UserID, in.MessageID)

	text := strings.TrimSpace(in.Text)
	st := e.sessions.State(in.UserID)
	kind := e.classify(text)

	entry, ok := e.dispatch[dispatchKey{st, kind}]
	if !ok {
		// Mid-flow button presses other than back/start are treated as the
		// flow's free-text answer.
		entry, ok = e.dispatch[dispatchKey{st, inputText}]
	}
	if !ok {
		entry = dispatchEntry{"fallback", true, e.handleMainMenu}
	}

	logger.Bot.DebugContext(ctx, "dispatch",
		slog.String("event", "dispatch"),
		slog.Int64("user_id", in.UserID),
		slog.String("state", string(st)),
		slog.String("handler", entry.name),
	)

	if entry.cleanup {
		e.ledger.Cleanup(ctx, in.UserID, e.ch)
	}
	return entry.fn(ctx, in, text)
}

// send delivers a reply and tracks its id for the next cleanup pass.
func (e *Engine) send(ctx context.Context, userID int64, text string, menu Menu) error {
	id, err := e.ch.Send(ctx, userID, text, menu)
	if err != nil {
		return err
	}
	e.ledger.TrackBot(userID, id)
	return nil
}

func (e *Engine) handleStart(ctx context.Context, in Incoming, _ string) error {
	e.sessions.Reset(in.UserID)
	if err := e.settings.EnsureProfile(ctx, in.UserID, in.Username, in.FullName); err != nil {
		return err
	}
	return e.send(ctx, in.UserID, msgMainMenu, MenuMain)
}

func (e *Engine) handleMainMenu(ctx context.Context, in Incoming, _ string) error {
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, msgMainMenu, MenuMain)
}

func (e *Engine) handleNumbersSection(ctx context.Context, in Incoming, _ string) error {
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, msgNumbersSection, MenuNumbers)
}

func (e *Engine) handleCallsignsSection(ctx context.Context, in Incoming, _ string) error {
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, msgCallsignsSection, MenuCallsigns)
}

// handleWriteNumber opens the phone entry flow behind the settings gate.
func (e *Engine) handleWriteNumber(ctx context.Context, in Incoming, _ string) error {
	ok, err := e.settingsComplete(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return e.send(ctx, in.UserID, msgNeedSettings, MenuMain)
	}
	if err := e.send(ctx, in.UserID, msgAskPhone, MenuRemove); err != nil {
		return err
	}
	e.sessions.Set(in.UserID, StateAwaitingPhone)
	return nil
}

func (e *Engine) handlePhone(ctx context.Context, in Incoming, text string) error {
	if !phone.Valid(text) {
		return e.send(ctx, in.UserID, msgBadPhone, MenuRemove)
	}
	normalized := phone.Normalize(text, e.prefix)
	e.sessions.SetPendingPhone(in.UserID, normalized)
	if err := e.send(ctx, in.UserID, msgAskComment, MenuRemove); err != nil {
		return err
	}
	e.sessions.Set(in.UserID, StateAwaitingComment)
	return nil
}

func (e *Engine) handleComment(ctx context.Context, in Incoming, text string) error {
	pending := e.sessions.PendingPhone(in.UserID)
	rec, err := e.records.AddNumber(ctx, in.UserID, pending, text)
	if err != nil {
		if errors.Is(err, service.ErrSettingsIncomplete) {
			e.sessions.Reset(in.UserID)
			return e.send(ctx, in.UserID, msgNeedSettings, MenuMain)
		}
		// State is kept so the user can resend the comment once storage
		// recovers.
		return err
	}
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, FormatNumberSaved(rec.Phone, rec.Comment), MenuNumbers)
}

// handleAddCallsign opens the callsign entry flow behind the settings gate.
func (e *Engine) handleAddCallsign(ctx context.Context, in Incoming, _ string) error {
	ok, err := e.settingsComplete(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return e.send(ctx, in.UserID, msgNeedSettings, MenuMain)
	}
	if err := e.send(ctx, in.UserID, msgAskCallsign, MenuRemove); err != nil {
		return err
	}
	e.sessions.Set(in.UserID, StateAwaitingCallsign)
	return nil
}

func (e *Engine) handleCallsign(ctx context.Context, in Incoming, text string) error {
	if !phone.Valid(text) {
		return e.send(ctx, in.UserID, msgBadCallsign, MenuRemove)
	}
	normalized := phone.Normalize(text, e.prefix)
	rec, err := e.records.AddCallsign(ctx, in.UserID, normalized)
	if err != nil {
		if errors.Is(err, service.ErrSettingsIncomplete) {
			e.sessions.Reset(in.UserID)
			return e.send(ctx, in.UserID, msgNeedSettings, MenuMain)
		}
		return err
	}
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, FormatCallsignSaved(rec.Callsign), MenuCallsigns)
}

func (e *Engine) handleTodayNumbers(ctx context.Context, in Incoming, _ string) error {
	settings, err := e.settings.Get(ctx, in.UserID)
	if err != nil {
		return err
	}
	recs, err := e.records.TodayNumbers(ctx, in.UserID)
	if err != nil {
		return err
	}
	text := FormatTodayNumbers(e.now(), settings.RegionValue(), settings.EmployeeNameValue(), recs)
	return e.send(ctx, in.UserID, text, MenuNumbers)
}

func (e *Engine) handleTodayCallsigns(ctx context.Context, in Incoming, _ string) error {
	settings, err := e.settings.Get(ctx, in.UserID)
	if err != nil {
		return err
	}
	recs, err := e.records.TodayCallsigns(ctx, in.UserID)
	if err != nil {
		return err
	}
	text := FormatTodayCallsigns(e.now(), settings.RegionValue(), settings.EmployeeNameValue(), recs)
	return e.send(ctx, in.UserID, text, MenuCallsigns)
}

func (e *Engine) handleEmployeeSection(ctx context.Context, in Incoming, _ string) error {
	e.sessions.Reset(in.UserID)
	settings, err := e.settings.Get(ctx, in.UserID)
	if err != nil {
		return err
	}
	return e.send(ctx, in.UserID, FormatEmployeeStatus(settings), MenuEmployee)
}

func (e *Engine) handleAskEmployeeName(ctx context.Context, in Incoming, _ string) error {
	if err := e.send(ctx, in.UserID, msgAskEmployeeName, MenuNameEntry); err != nil {
		return err
	}
	e.sessions.Set(in.UserID, StateAwaitingEmployeeName)
	return nil
}

func (e *Engine) handleEmployeeNameInput(ctx context.Context, in Incoming, text string) error {
	if err := e.settings.SetEmployeeName(ctx, in.UserID, in.Username, in.FullName, text); err != nil {
		return err
	}
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, FormatEmployeeNameSaved(text), MenuEmployee)
}

func (e *Engine) handleShowRegions(ctx context.Context, in Incoming, _ string) error {
	return e.send(ctx, in.UserID, msgChooseRegion, MenuRegions)
}

func (e *Engine) handleRegionPick(ctx context.Context, in Incoming, text string) error {
	if err := e.settings.SetRegion(ctx, in.UserID, in.Username, in.FullName, text); err != nil {
		return err
	}
	e.sessions.Reset(in.UserID)
	return e.send(ctx, in.UserID, FormatRegionSaved(text), MenuEmployee)
}

func (e *Engine) settingsComplete(ctx context.Context, userID int64) (bool, error) {
	settings, err := e.settings.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return settings.Complete(), nil
}
