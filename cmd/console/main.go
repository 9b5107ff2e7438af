package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/debatehub/console/internal/api"
	"github.com/debatehub/console/internal/archive"
	"github.com/debatehub/console/internal/channel"
	"github.com/debatehub/console/internal/config"
	"github.com/debatehub/console/internal/debate"
	"github.com/debatehub/console/internal/httpapi"
	"github.com/debatehub/console/internal/httpapi/handlers"
	"github.com/debatehub/console/internal/identity"
	"github.com/debatehub/console/internal/session"
)

func main() {
	debateID := flag.Int64("debate", 0, "debate id to join")
	flag.Parse()
	if *debateID <= 0 {
		log.Fatalf("usage: console -debate <id>")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	id, err := identity.FromToken(cfg.AccessToken)
	if err != nil {
		log.Fatalf("resolve identity: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.AccessToken, cfg.HTTPTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Resolution is terminal: a missing debate never gets a channel.
	deb, err := client.GetDebate(ctx, *debateID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Fatalf("debate %d not found", *debateID)
		}
		log.Fatalf("resolve debate: %v", err)
	}

	db, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	repo := archive.NewRepo(db)
	arch := archive.NewService(repo, logger)

	transcript, err := arch.OpenTranscript(ctx, *deb)
	if err != nil {
		log.Fatalf("open transcript: %v", err)
	}

	header := http.Header{}
	if cfg.AccessToken != "" {
		header.Set("Authorization", "Bearer "+cfg.AccessToken)
	}
	mgr := channel.New(cfg.WSBaseURL, deb.ID, channel.Options{
		Logger:            logger,
		ReconnectBase:     cfg.ReconnectBase,
		ReconnectCap:      cfg.ReconnectCap,
		ReconnectAttempts: cfg.ReconnectAttempts,
		Header:            header,
	})

	sess := session.New(session.Config{
		Debate:              *deb,
		Identity:            id,
		Sender:              mgr,
		Suggester:           client,
		Statuses:            client,
		ModerationThreshold: cfg.ModerationThreshold,
		Logger:              logger,
		Observers: []session.Observer{
			arch.Sink(transcript.ID),
			printEntry,
		},
	})

	mgr.Open(ctx)
	go sess.Run(ctx, mgr.Events())

	// Seed from REST history. A failed fetch degrades to an empty seed
	// so buffered channel events still flush.
	history, err := client.ListArguments(ctx, deb.ID)
	if err != nil {
		logger.Warn("history fetch failed, starting empty", "debate", deb.ID, "error", err)
	}
	sess.Seed(ctx, history)

	// Roster resolution gates compose only; messages render without it.
	go func() {
		roster, err := client.ListParticipants(ctx, deb.ID)
		if err != nil {
			logger.Warn("roster fetch failed", "debate", deb.ID, "error", err)
			return
		}
		sess.SetRoster(roster)
	}()

	var observer *http.Server
	if cfg.ObserverAddr != "" {
		h := handlers.NewHandler(sess, mgr, repo)
		observer = &http.Server{Addr: cfg.ObserverAddr, Handler: httpapi.NewRouter(h)}
		go func() {
			logger.Info("observer api listening", "addr", cfg.ObserverAddr)
			if err := observer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("observer api failed", "error", err)
			}
		}()
	}

	fmt.Printf("joined debate %d: %s [%s]\n", deb.ID, deb.Title, deb.Status)
	if notice := sess.Notice(); notice != "" {
		fmt.Println(notice)
	}

	go composeLoop(ctx, sess, stop)

	<-ctx.Done()

	sess.Close()
	mgr.Close()
	if observer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = observer.Shutdown(shutdownCtx)
		cancel()
	}
	arch.SetStatus(context.Background(), transcript.ID, sess.Status())
}

// composeLoop reads stdin lines: /status <next> drives the lifecycle,
// /quit leaves, anything else is sent as an argument.
func composeLoop(ctx context.Context, sess *session.Session, stop func()) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			stop()
			return
		case strings.HasPrefix(line, "/status "):
			next := debate.Status(strings.TrimSpace(strings.TrimPrefix(line, "/status ")))
			if !next.Valid() {
				fmt.Println("unknown status; use pending|active|completed|archived")
				continue
			}
			if err := sess.UpdateStatus(ctx, next); err != nil {
				fmt.Printf("status change failed: %v\n", err)
				continue
			}
			fmt.Printf("debate is now %s\n", sess.Status())
		default:
			if err := sess.Send(line); err != nil {
				if errors.Is(err, session.ErrComposeDisabled) {
					if notice := sess.Notice(); notice != "" {
						fmt.Println(notice)
					} else {
						fmt.Println("you are not a participant in this debate")
					}
					continue
				}
				fmt.Printf("send failed: %v\n", err)
			}
		}
	}
	stop()
}

// printEntry renders one ledger entry. It runs on the event path, so
// it only writes to stdout.
func printEntry(arg debate.Argument) {
	name := arg.FullName
	if name == "" {
		name = fmt.Sprintf("user %d", arg.UserID)
	}
	switch arg.Type {
	case debate.TypeModerator, debate.TypeSystem:
		fmt.Printf("  * %s: %s\n", name, arg.Content)
	default:
		fmt.Printf("[%s] %s: %s\n", arg.Role, name, arg.Content)
	}
}
