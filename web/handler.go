// Package web serves the local mission dashboard.
//
// The handler reads and writes the same state file as the CLI; every
// mutation goes through the store's file lock, so the browser and the
// terminal can be used side by side.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/Vanndavid/Mission-Employed/codex"
	"github.com/Vanndavid/Mission-Employed/dates"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
	"github.com/Vanndavid/Mission-Employed/pipeline"
	"github.com/Vanndavid/Mission-Employed/prep"
	"github.com/Vanndavid/Mission-Employed/protocol"
)

// HistoryDays is how many recent days the dashboard grid shows.
const HistoryDays = 30

// Options configures the dashboard handler.
type Options struct {
	Store *statestore.Store
	Tasks []protocol.Task
	Mode  dates.Mode
	Now   func() time.Time
}

// Handler serves the mission dashboard.
type Handler struct {
	store    *statestore.Store
	pipeline *pipeline.Manager
	prep     *prep.Manager
	tasks    []protocol.Task
	mode     dates.Mode
	now      func() time.Time

	mux       *http.ServeMux
	templates *template.Template
}

// NewHandler creates a dashboard handler over the given store.
func NewHandler(opts Options) *Handler {
	handler := &Handler{
		store:     opts.Store,
		pipeline:  pipeline.NewManager(opts.Store, confirmAll{}),
		prep:      prep.NewManager(opts.Store),
		tasks:     opts.Tasks,
		mode:      opts.Mode,
		now:       opts.Now,
		templates: newTemplates(),
	}
	if len(handler.tasks) == 0 {
		handler.tasks = protocol.DefaultTasks()
	}
	if !handler.mode.IsValid() {
		handler.mode = dates.WeekdaysOnly
	}
	if handler.now == nil {
		handler.now = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handleDashboard)
	mux.HandleFunc("/toggle", handler.handleToggle)
	mux.HandleFunc("/pipeline", handler.handlePipeline)
	mux.HandleFunc("/pipeline/add", handler.handlePipelineAdd)
	mux.HandleFunc("/pipeline/status", handler.handlePipelineStatus)
	mux.HandleFunc("/pipeline/delete", handler.handlePipelineDelete)
	mux.HandleFunc("/prep", handler.handlePrep)
	mux.HandleFunc("/prep/update", handler.handlePrepUpdate)
	mux.HandleFunc("/codex", handler.handleCodex)
	mux.HandleFunc("/export", handler.handleExport)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// confirmAll answers yes to every prompt; the browser form is the
// confirmation.
type confirmAll struct{}

func (confirmAll) Confirm(string) (bool, error) { return true, nil }

type taskView struct {
	Task protocol.Task
	Done bool
}

type dayColumn struct {
	Date  dates.Key
	Today bool
	Done  []bool
}

type dashboardData struct {
	ActiveTab string
	Today     dates.Key
	Tasks     []taskView
	Streak    int
	History   []dayColumn
	Error     string
}

type pipelineData struct {
	ActiveTab    string
	Applications []pipeline.Application
	Criteria     []pipeline.Criterion
	TargetScore  int
	Statuses     []pipeline.Status
	Error        string
}

type prepView struct {
	Theme   prep.Theme
	Bullets []string
	Joined  string
}

type prepData struct {
	ActiveTab string
	Themes    []prepView
	Error     string
}

type codexData struct {
	ActiveTab string
	Rules     codex.Rules
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	now := h.now()
	today := dates.KeyFor(now)
	data := dashboardData{ActiveTab: "dashboard", Today: today}

	st, err := h.store.Load()
	if err != nil {
		data.Error = err.Error()
		h.render(w, "dashboard", data)
		return
	}
	log := protocol.Log(st.DailyLogs)

	for _, task := range h.tasks {
		data.Tasks = append(data.Tasks, taskView{Task: task, Done: log.Done(today, task.ID)})
	}
	data.Streak = log.Streak(h.tasks, now, h.mode)

	recent := dates.Recent(now, HistoryDays, h.mode)
	// Oldest first for the grid.
	for i := len(recent) - 1; i >= 0; i-- {
		day := recent[i]
		column := dayColumn{Date: day, Today: day == today}
		for _, task := range h.tasks {
			column.Done = append(column.Done, log.Done(day, task.ID))
		}
		data.History = append(data.History, column)
	}

	h.render(w, "dashboard", data)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form input", http.StatusBadRequest)
		return
	}

	taskID := strings.TrimSpace(r.PostFormValue("task"))
	if _, ok := protocol.FindTask(h.tasks, taskID); !ok {
		http.Error(w, fmt.Sprintf("unknown task %q", taskID), http.StatusBadRequest)
		return
	}
	date := dates.Key(strings.TrimSpace(r.PostFormValue("date")))
	if date == "" {
		date = dates.KeyFor(h.now())
	}

	err := h.store.Update(func(st *statestore.AppState) error {
		log := protocol.Log(st.DailyLogs)
		log.Toggle(date, taskID)
		st.DailyLogs = log
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handlePipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	data := pipelineData{ActiveTab: "pipeline", Statuses: pipeline.ValidStatuses()}
	apps, err := h.pipeline.List()
	if err != nil {
		data.Error = err.Error()
		h.render(w, "pipeline", data)
		return
	}
	criteria, target, err := h.pipeline.Criteria()
	if err != nil {
		data.Error = err.Error()
		h.render(w, "pipeline", data)
		return
	}

	data.Applications = apps
	data.Criteria = criteria
	data.TargetScore = target
	h.render(w, "pipeline", data)
}

func (h *Handler) handlePipelineAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form input", http.StatusBadRequest)
		return
	}

	opts := pipeline.AddOptions{
		Company: strings.TrimSpace(r.PostFormValue("company")),
		Role:    strings.TrimSpace(r.PostFormValue("role")),
		URL:     strings.TrimSpace(r.PostFormValue("url")),
		Notes:   r.PostFormValue("notes"),
	}
	for _, id := range r.PostForm["criteria"] {
		opts.CriteriaMet = append(opts.CriteriaMet, id)
	}

	if _, err := h.pipeline.Add(opts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/pipeline", http.StatusSeeOther)
}

func (h *Handler) handlePipelineStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form input", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.PostFormValue("id"))
	status := pipeline.Status(strings.TrimSpace(r.PostFormValue("status")))
	if _, err := h.pipeline.UpdateStatus(id, status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/pipeline", http.StatusSeeOther)
}

func (h *Handler) handlePipelineDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form input", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.PostFormValue("id"))
	if _, err := h.pipeline.Delete(id, true); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/pipeline", http.StatusSeeOther)
}

func (h *Handler) handlePrep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	data := prepData{ActiveTab: "prep"}
	answers, err := h.prep.Answers()
	if err != nil {
		data.Error = err.Error()
		h.render(w, "prep", data)
		return
	}

	themes := prep.DefaultThemes()
	for i, theme := range themes {
		data.Themes = append(data.Themes, prepView{
			Theme:   theme,
			Bullets: answers[i].Bullets,
			Joined:  strings.Join(answers[i].Bullets, "\n"),
		})
	}
	h.render(w, "prep", data)
}

func (h *Handler) handlePrepUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form input", http.StatusBadRequest)
		return
	}

	themeID := strings.TrimSpace(r.PostFormValue("theme"))
	bullets := splitBullets(r.PostFormValue("bullets"))
	if err := h.prep.UpdateAnswer(themeID, bullets); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/prep", http.StatusSeeOther)
}

func (h *Handler) handleCodex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	h.render(w, "codex", codexData{ActiveTab: "codex", Rules: codex.MentalRules()})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", statestore.ExportFileName))
	if err := h.store.Export(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = h.templates.ExecuteTemplate(w, name, data)
}

func splitBullets(value string) []string {
	var bullets []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		bullets = []string{""}
	}
	return bullets
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
