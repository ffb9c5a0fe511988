package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiv1 "github.com/va6996/mathdesk/apis/v1"
	"github.com/va6996/mathdesk/bootstrap"
	"github.com/va6996/mathdesk/config"
	logcontext "github.com/va6996/mathdesk/context"
	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
)

// AgentServer serves mathdesk.v1.AgentService backed by the desk
type AgentServer struct {
	app *bootstrap.App
}

var _ apiv1.AgentService = (*AgentServer)(nil)

func (s *AgentServer) SendMessage(ctx context.Context, req *connect.Request[apiv1.SendMessageRequest]) (*connect.Response[apiv1.SendMessageResponse], error) {
	msg := req.Msg
	if msg.Message == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("message is required"))
	}
	agentType := msg.AgentType
	if agentType == "" {
		agentType = "chat"
	}

	requestID := logcontext.NewRequestID()
	ctx = logcontext.WithRequestID(ctx, requestID)
	if msg.ThreadID != "" {
		ctx = logcontext.WithThreadID(ctx, msg.ThreadID)
	}

	log.Infof(ctx, "Received message for %s agent: %s", agentType, msg.Message)

	reply, err := s.app.Desk.SendMessage(ctx, agentType, msg.ThreadID, msg.Message)
	if err != nil {
		log.Errorf(ctx, "Error processing message: %v", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&apiv1.SendMessageResponse{
		ThreadID: reply.ThreadID,
		AgentID:  reply.AgentID,
		Response: reply.Response,
	}), nil
}

func (s *AgentServer) ListAgents(ctx context.Context, req *connect.Request[apiv1.ListAgentsRequest]) (*connect.Response[apiv1.ListAgentsResponse], error) {
	ctx = logcontext.WithRequestID(ctx, logcontext.NewRequestID())

	deployments, err := orm.ListDeployments(s.app.DB)
	if err != nil {
		log.Errorf(ctx, "Error listing deployments: %v", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	response := &apiv1.ListAgentsResponse{}
	for _, dep := range deployments {
		response.Agents = append(response.Agents, apiv1.AgentInfo{
			Key:         dep.AgentKey,
			AssistantID: dep.AssistantID,
			Name:        dep.Name,
			Model:       dep.Model,
			DeployedAt:  dep.DeployedAt,
		})
	}
	return connect.NewResponse(response), nil
}

// listThreads serves the recent-conversation view, most recent first
func (s *AgentServer) listThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := orm.ListRecentThreads(s.app.DB, 50)
	if err != nil {
		log.Errorf(r.Context(), "Error listing threads: %v", err)
		http.Error(w, "failed to list threads", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(threads)
}

// getThread serves one thread record by ID
func (s *AgentServer) getThread(w http.ResponseWriter, r *http.Request) {
	thread, err := orm.GetThread(s.app.DB, r.PathValue("id"))
	if err != nil {
		http.Error(w, "thread not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(thread)
}

// healthz reports service metadata for liveness checks
func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "mathdesk",
		"status":  "ok",
	})
}

func main() {
	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info(context.Background(), "\nProgram terminated externally. Exiting...")
		cancel()
	}()

	// 0. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.Init(cfg.Log.Level)

	// 1. Raw schema bootstrap on the sqlite path, ahead of gorm
	if cfg.DB.Driver == "sqlite" || cfg.DB.Driver == "" {
		db, err := InitDB(cfg.DB.DSN)
		if err != nil {
			log.Fatalf(context.Background(), "Failed to open database: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			log.Fatalf(context.Background(), "Migrations failed: %v", err)
		}
		db.Close()
	}

	// 2. Init App Components using Bootstrap
	app, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	// 3. Start API Server
	port := cfg.Server.Port
	if port == "" {
		port = "8000"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthz)

	server := &AgentServer{app: app}
	mux.HandleFunc("GET /threads", server.listThreads)
	mux.HandleFunc("GET /threads/{id}", server.getThread)
	path, handler := apiv1.NewAgentServiceHandler(server)
	mux.Handle(path, handler)

	// Simple CORS middleware
	corsHandler := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			h.ServeHTTP(w, r)
		})
	}

	// Use h2c for HTTP/2 without TLS (common for dev and internal services)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: h2c.NewHandler(corsHandler(mux), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Infof(context.Background(), "Starting server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}
