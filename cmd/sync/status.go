package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"
)

// syncStatus tracks the outcome of the most recent stock sync. One sync
// runs at a time; concurrent triggers get 409.
type syncStatus struct {
	mu        sync.Mutex
	running   bool
	LastRunAt *time.Time `json:"last_run_at"`
	LastError string     `json:"last_error,omitempty"`
}

func runStatusServer(c *cli.Context) error {
	dbURL := c.String("db-url")
	odooCfg := odooConfigFromFlags(c)
	status := &syncStatus{}

	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		status.mu.Lock()
		defer status.mu.Unlock()
		writeJSON(w, http.StatusOK, status)
	}).Methods(http.MethodGet)

	router.HandleFunc("/sync/stock", func(w http.ResponseWriter, r *http.Request) {
		status.mu.Lock()
		if status.running {
			status.mu.Unlock()
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a sync is already running"})
			return
		}
		status.running = true
		status.mu.Unlock()

		go func() {
			err := syncStock(c.Context, dbURL, odooCfg)

			status.mu.Lock()
			defer status.mu.Unlock()
			status.running = false
			now := time.Now().UTC()
			status.LastRunAt = &now
			if err != nil {
				status.LastError = err.Error()
				log.Printf("stock sync failed: %v", err)
				return
			}
			status.LastError = ""
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
	}).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:         c.String("listen"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Sync status listener on %s", srv.Addr)
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
