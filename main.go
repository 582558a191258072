package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jasonlvhit/gocron"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio-admin/internal/config"
	"github.com/Zachkp/portfolio-admin/internal/inbox"
	"github.com/Zachkp/portfolio-admin/internal/resume"
	"github.com/Zachkp/portfolio-admin/internal/session"
	"github.com/Zachkp/portfolio-admin/internal/sqlitedb"
	"github.com/Zachkp/portfolio-admin/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAppConfig()

	db, err := sqlitedb.Open(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	backend, err := newBackend(ctx, cfg, db)
	if err != nil {
		log.Fatal("Failed to set up record store:", err)
	}
	resumes, err := newResumeStore(ctx, cfg, db)
	if err != nil {
		log.Fatal("Failed to set up resume store:", err)
	}

	srv := &server{
		cfg:      cfg,
		hub:      store.NewHub(backend),
		inbox:    inbox.New(db),
		resumes:  resumes,
		visitors: newVisitorLog(db, cfg.Admin.SessionSecret, cfg.Location),
		mail:     newMailer(cfg.SMTP),
		now:      time.Now,
		sessions: session.NewManager(session.Credentials{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
			UID:      cfg.Admin.UID,
		}, cfg.Admin.SessionSecret),
	}
	if !srv.mail.enabled() {
		log.Println("SMTP not configured, contact messages are kept in the admin inbox only")
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	stopJobs := startJobs(srv)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(srv),
	}
	go func() {
		log.Printf("Listening on :%s, admin access available at /admin/login", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	close(stopJobs)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	srv.visitors.wait()
	if err := srv.hub.Close(); err != nil {
		log.Printf("Error closing record store: %v", err)
	}
}

// newBackend picks the record store named by STORE_BACKEND.
func newBackend(ctx context.Context, cfg *config.AppConfig, db *sql.DB) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		log.Printf("Records stored in SQLite at %s", cfg.Store.SQLitePath)
		return store.NewSQLite(db), nil
	case "firestore":
		client, err := store.NewFirestoreClient(ctx, cfg.Store.ProjectID)
		if err != nil {
			return nil, err
		}
		log.Printf("Records stored in Firestore project %s", cfg.Store.ProjectID)
		return store.NewFirestore(client), nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
}

// newResumeStore uses Cloud Storage when RESUME_BUCKET is set.
func newResumeStore(ctx context.Context, cfg *config.AppConfig, db *sql.DB) (resume.Store, error) {
	if cfg.Resume.Bucket == "" {
		return resume.NewSQLite(db), nil
	}
	client, err := resume.NewGCSClient(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Resume stored in bucket %s", cfg.Resume.Bucket)
	return resume.NewGCS(client, cfg.Resume.Bucket), nil
}

// startJobs runs the housekeeping jobs once and then hourly: visitor
// retention and closing record feeds whose sessions can no longer be used.
// Closing the returned channel stops the scheduler.
func startJobs(srv *server) chan bool {
	cleanVisitors := func() {
		if _, err := srv.visitors.cleanup(srv.cfg.VisitorRetention); err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
		}
	}
	sweepFeeds := func() {
		srv.hub.Sweep(session.TTL)
	}
	cleanVisitors()

	s := gocron.NewScheduler()
	for _, job := range []func(){cleanVisitors, sweepFeeds} {
		if err := s.Every(1).Hours().Do(job); err != nil {
			log.Printf("Error scheduling job: %v", err)
		}
	}
	return s.Start()
}
