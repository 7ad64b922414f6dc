package hxtime

import (
	"errors"
	"net/http"
	"testing"
)

type testResultProps struct {
	ID   int
	Name string
}

func TestResultOK(t *testing.T) {
	props := testResultProps{ID: 1, Name: "test"}
	r := OK(props)

	if r.GetProps() != props {
		t.Errorf("GetProps() = %+v, want %+v", r.GetProps(), props)
	}
	if r.GetErr() != nil {
		t.Errorf("GetErr() = %v, want nil", r.GetErr())
	}
	if r.ShouldSkip() {
		t.Error("ShouldSkip() = true, want false")
	}
	if r.GetRedirect() != "" {
		t.Errorf("GetRedirect() = %q, want empty", r.GetRedirect())
	}
	if r.GetStatus() != 0 {
		t.Errorf("GetStatus() = %d, want 0", r.GetStatus())
	}
}

func TestResultErr(t *testing.T) {
	testErr := errors.New("test error")
	r := Err(testResultProps{ID: 1}, testErr)

	if r.GetErr() != testErr {
		t.Errorf("GetErr() = %v, want %v", r.GetErr(), testErr)
	}
	if r.GetProps().ID != 1 {
		t.Errorf("GetProps().ID = %d, want 1", r.GetProps().ID)
	}
}

func TestResultSkipAndRedirect(t *testing.T) {
	if !Skip[testResultProps]().ShouldSkip() {
		t.Error("Skip().ShouldSkip() = false")
	}
	if got := Redirect[testResultProps]("/done").GetRedirect(); got != "/done" {
		t.Errorf("GetRedirect() = %q, want /done", got)
	}
}

func TestResultFlash(t *testing.T) {
	r := OK(testResultProps{}).
		Flash(FlashSuccess, "saved").
		Flash(FlashWarning, "check input")

	flashes := r.GetFlashes()
	if len(flashes) != 2 {
		t.Fatalf("len(GetFlashes()) = %d, want 2", len(flashes))
	}
	if flashes[0] != (Flash{Level: FlashSuccess, Message: "saved"}) {
		t.Errorf("flashes[0] = %+v", flashes[0])
	}
	if flashes[1].Level != FlashWarning {
		t.Errorf("flashes[1].Level = %q", flashes[1].Level)
	}
}

func TestResultTriggerOrder(t *testing.T) {
	r := OK(testResultProps{}).
		Trigger("change", map[string]any{"value": "01"}).
		Trigger("commit", map[string]any{"value": "01"}).
		Trigger("change", map[string]any{"value": "02"}).
		Trigger("plain")

	events := r.GetEvents()
	if len(events) != 3 {
		t.Fatalf("len(GetEvents()) = %d, want 3: %+v", len(events), events)
	}
	names := []string{events[0].Name, events[1].Name, events[2].Name}
	if names[0] != "change" || names[1] != "commit" || names[2] != "plain" {
		t.Errorf("order = %v, want [change commit plain]", names)
	}
	if events[0].Data["value"] != "02" {
		t.Errorf("repeated trigger should replace data, got %v", events[0].Data)
	}
	if events[2].Data != nil {
		t.Errorf("plain event data = %v, want nil", events[2].Data)
	}
}

func TestResultTriggerDoesNotAlias(t *testing.T) {
	base := OK(testResultProps{}).Trigger("a")
	left := base.Trigger("b")
	right := base.Trigger("c")

	if len(base.GetEvents()) != 1 {
		t.Errorf("base events = %+v", base.GetEvents())
	}
	if left.GetEvents()[1].Name != "b" || right.GetEvents()[1].Name != "c" {
		t.Errorf("branches share storage: left %+v right %+v", left.GetEvents(), right.GetEvents())
	}
}

func TestResultHeader(t *testing.T) {
	base := OK(testResultProps{}).Header("X-One", "1")
	next := base.Header("X-Two", "2")

	if len(base.GetHeaders()) != 1 {
		t.Errorf("base headers = %v, want only X-One", base.GetHeaders())
	}
	if next.GetHeaders()["X-One"] != "1" || next.GetHeaders()["X-Two"] != "2" {
		t.Errorf("next headers = %v", next.GetHeaders())
	}
}

func TestResultStatus(t *testing.T) {
	r := OK(testResultProps{}).Status(http.StatusAccepted)
	if r.GetStatus() != http.StatusAccepted {
		t.Errorf("GetStatus() = %d, want 202", r.GetStatus())
	}
}
