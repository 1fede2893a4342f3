package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rook-computer/inkpoint/internal/app"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
)

const (
	scenarioLibrary = "library"
	scenarioEmpty   = "empty"
	scenarioFull    = "full"
)

var scenarioNames = []string{scenarioLibrary, scenarioEmpty, scenarioFull}

var sampleTitles = []string{
	"Moby Dick",
	"Pride and Prejudice",
	"The Time Machine",
	"Frankenstein",
	"Dracula",
	"Middlemarch",
	"Great Expectations",
	"War and Peace",
	"Ulysses",
	"The Odyssey",
	"Don Quixote",
	"Emma",
}

// SimBattery is a battery whose charge is set from the control endpoints.
type SimBattery struct{ v atomic.Int64 }

func (b *SimBattery) Percentage() int { return int(b.v.Load()) }

func (b *SimBattery) Set(percent int) { b.v.Store(int64(min(max(percent, 0), 100))) }

type SimControl struct {
	processCtx      context.Context
	app             *app.App
	panel           *render.MemoryPanel
	battery         *SimBattery
	startupScenario string
	currentScenario atomic.Value // string
}

func NewSimControl(processCtx context.Context, a *app.App, panel *render.MemoryPanel, battery *SimBattery, startupScenario string) *SimControl {
	if processCtx == nil {
		processCtx = context.Background()
	}
	c := &SimControl{processCtx: processCtx, app: a, panel: panel, battery: battery, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = scenarioLibrary
	}
	c.currentScenario.Store(c.startupScenario)
	return c
}

// ApplyScenario replaces the library and the recent books with a fixture set.
func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	var books int
	switch name {
	case scenarioEmpty:
	case scenarioLibrary:
		books = 3
	case scenarioFull:
		books = len(sampleTitles)
	default:
		return fmt.Errorf("unknown scenario %q", name)
	}

	if err := c.clear(); err != nil {
		return err
	}
	if err := c.seed(books); err != nil {
		return err
	}
	c.app.LibraryChanged()
	c.currentScenario.Store(name)
	return nil
}

func (c *SimControl) Reset() error {
	c.battery.Set(76)
	return c.ApplyScenario(c.startupScenario)
}

func (c *SimControl) clear() error {
	files, err := c.app.Library().List()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := c.app.Library().Delete(f.Name); err != nil {
			return err
		}
	}
	return c.app.Recent().Clear(c.processCtx)
}

// seed writes n dummy books and opens them oldest first, so the first title
// ends up last in the recents.
func (c *SimControl) seed(n int) error {
	library := c.app.Library()
	start := time.Now().Add(-time.Duration(n) * time.Hour)
	for i, title := range sampleTitles[:n] {
		name := strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".epub"
		body := []byte("dummy book: " + title + "\n")
		if err := library.Save(name, bytes.NewReader(body), int64(len(body))); err != nil {
			return err
		}
		path, err := library.Path(name)
		if err != nil {
			return err
		}
		book := recent.Book{
			Path:     path,
			Title:    title,
			OpenedAt: start.Add(time.Duration(i) * time.Hour),
		}
		if err := c.app.Recent().Touch(c.processCtx, book); err != nil {
			return err
		}
	}
	return nil
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	if control == nil {
		return
	}

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.currentScenario.Load()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/sim/scenario/")
		name = strings.Trim(name, "/")
		if err := control.ApplyScenario(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.currentScenario.Load()})
	})

	mux.HandleFunc("/sim/battery", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, map[string]any{"percent": control.battery.Percentage()})
		case http.MethodPost:
			var patch struct {
				Percent *int `json:"percent"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch.Percent == nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			control.battery.Set(*patch.Percent)
			writeSimJSON(w, http.StatusOK, map[string]any{"percent": control.battery.Percentage()})
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Refresh modes of the retained panel commits, oldest first.
	mux.HandleFunc("/sim/commits", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		commits := control.panel.Commits()
		modes := make([]string, 0, len(commits))
		for _, c := range commits {
			modes = append(modes, c.Mode.String())
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"modes": modes})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
