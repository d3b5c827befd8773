package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/storiny/web-sub003/internal/config"
	"github.com/storiny/web-sub003/internal/engine"
	"github.com/storiny/web-sub003/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := stream.NewHub(stream.NewLoader(engine.OptionsFromConfig(cfg.Editor)))
	go hub.Run(ctx)

	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/scenes", func(w http.ResponseWriter, r *http.Request) {
		id, err := hub.CreateScene()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"sceneId": id})
	}).Methods("POST")

	r.HandleFunc("/scenes/{sceneId}/bounds", func(w http.ResponseWriter, r *http.Request) {
		handleBounds(w, r, hub)
	}).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/scene/{sceneId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// handleBounds answers GET /scenes/{sceneId}/bounds?ids=a,b[&caption=1]
// through the scene's room.
func handleBounds(w http.ResponseWriter, r *http.Request, hub *stream.Hub) {
	sceneID := mux.Vars(r)["sceneId"]

	q := stream.BoundsQueryPayload{IncludeCaption: r.URL.Query().Get("caption") == "1"}
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			q.ElementIDs = append(q.ElementIDs, id)
		}
	}
	if len(q.ElementIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing ids"})
		return
	}

	payload, _ := json.Marshal(q)
	replies, err := hub.Query(r.Context(), sceneID, &stream.Message{Type: stream.TypeBoundsQuery, Payload: payload})
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if len(replies) == 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "no reply"})
		return
	}

	reply := replies[0]
	if reply.Type == stream.TypeError {
		var e stream.ErrorPayload
		if err := json.Unmarshal(reply.Payload, &e); err != nil {
			e.Message = err.Error()
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": e.Message})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(reply.Payload)
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *stream.Hub, origins []string) {
	sceneID := mux.Vars(r)["sceneId"]

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := stream.NewClient(hub, conn, sceneID)
	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
